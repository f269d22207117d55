package ledger

import (
	"net/http"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
)

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var params ledger.CreateShipmentParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	params.CreatorID = auth.UserID(r.Context())

	s, err := h.svc.CreateShipment(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toShipmentResponse(s))
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter := ledger.ShipmentFilter{
		ContractID: sc.contractID,
		ContractNo: sc.contractNo,
		Search:     sc.search,
		Page:       sc.page,
	}

	if s := r.URL.Query().Get("freight_status"); s != "" {
		fs := ledger.FreightStatus(s)
		filter.FreightStatus = &fs
	}

	if s := r.URL.Query().Get("invoice_status"); s != "" {
		is := ledger.InvoiceStatus(s)
		filter.InvoiceStatus = &is
	}

	res, err := h.svc.ListShipments(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, toShipmentResponse))
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.GetShipment(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toShipmentResponse(s))
}

func (h *Handler) updateShipment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var params ledger.UpdateShipmentParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.UpdateShipment(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toShipmentResponse(s))
}

func (h *Handler) deleteShipment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.DeleteShipment(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
