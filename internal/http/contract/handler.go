package contract

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

type Handler struct {
	svc *contract.Service
}

func NewHandler(svc *contract.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/options", h.options)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.transition)
	r.Post("/{id}/recompute", h.recompute)
	r.Post("/{id}/remaining-check", h.checkRemaining)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params contract.CreateParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	params.CreatorID = auth.UserID(r.Context())

	c, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, NewResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := contract.ListFilter{
		Search: q.Get("search"),
		Page:   query.PageFromQuery(q),
	}

	if s := q.Get("status"); s != "" {
		st := contract.Status(s)
		filter.Status = &st
	}

	customerID, err := respond.OptionalID(r, "customer")
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter.CustomerID = customerID

	res, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, NewResponse))
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.Options(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toOptions(cs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var params contract.UpdateParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transitionRequest struct {
	Status contract.Status `json:"status"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req transitionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.svc.Transition(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, transitionResponse{Contract: NewResponse(res.Contract), Warning: res.Warning})
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Recompute(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewResponse(c))
}

type remainingRequest struct {
	Kind   progress.Kind   `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// checkRemaining answers 200 with what is left when the amount fits and 422 when it does not.
func (h *Handler) checkRemaining(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req remainingRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	remaining, err := h.svc.CheckRemaining(r.Context(), id, req.Amount, req.Kind)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, remainingResponse{Kind: req.Kind, Remaining: progress.Money(remaining)})
}
