package ledger

import (
	"net/http"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
)

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var params ledger.CreateInvoiceParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	params.CreatorID = auth.UserID(r.Context())

	out, err := h.svc.CreateInvoice(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toInvoiceResponse(out))
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.svc.ListInvoices(r.Context(), ledger.InvoiceFilter{
		ContractID: sc.contractID,
		ContractNo: sc.contractNo,
		Search:     sc.search,
		Page:       sc.page,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, toInvoiceResponse))
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	out, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toInvoiceResponse(out))
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var params ledger.UpdateInvoiceParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	out, err := h.svc.UpdateInvoice(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toInvoiceResponse(out))
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.DeleteInvoice(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
