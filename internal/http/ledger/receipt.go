package ledger

import (
	"net/http"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
)

func (h *Handler) createReceipt(w http.ResponseWriter, r *http.Request) {
	var params ledger.CreateReceiptParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	params.CreatorID = auth.UserID(r.Context())

	out, err := h.svc.CreateReceipt(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toReceiptResponse(out))
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.svc.ListReceipts(r.Context(), ledger.ReceiptFilter{
		ContractID: sc.contractID,
		ContractNo: sc.contractNo,
		Search:     sc.search,
		Page:       sc.page,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, toReceiptResponse))
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	out, err := h.svc.GetReceipt(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReceiptResponse(out))
}

func (h *Handler) updateReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var params ledger.UpdateReceiptParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	out, err := h.svc.UpdateReceipt(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReceiptResponse(out))
}

func (h *Handler) deleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.DeleteReceipt(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
