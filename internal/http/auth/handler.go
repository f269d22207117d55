package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/session"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts login and refresh publicly and everything else behind a session.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)

	r.Group(func(r chi.Router) {
		r.Use(session.Authenticate(h.svc))
		r.Get("/me", h.me)
		r.With(session.RequireRole(auth.RoleManager)).Post("/users", h.register)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	auth.Token
	User *auth.Session `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	tok, s, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: tok, User: s})
}

// refresh takes the current token from the Authorization header; it may have expired within
// the refresh window.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := session.BearerToken(r)
	if !ok {
		respond.Error(w, auth.ErrInvalidToken)
		return
	}

	tok, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tok)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, auth.FromContext(r.Context()))
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      auth.Role `json:"role"`
	RoleLabel string    `json:"role_label"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var params auth.RegisterParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Error(w, err)
		return
	}

	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		RoleLabel: u.Role.Label(),
		CreatedAt: u.CreatedAt,
	})
}
