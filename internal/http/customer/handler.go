package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	contracthttp "github.com/MrJamesThe3rd/salesdesk/internal/http/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/contracts", h.contracts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params customer.CreateParams
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

	res, err := h.svc.List(r.Context(), customer.ListFilter{
		Search: q.Get("search"),
		Region: q.Get("region"),
		Page:   query.PageFromQuery(q),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, NewResponse))
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

	var params customer.UpdateParams
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

func (h *Handler) contracts(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.svc.Contracts(r.Context(), id, query.PageFromQuery(r.URL.Query()))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPage(res, contracthttp.NewResponse))
}
