package attachment

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

// formField is the multipart field holding the uploaded file.
const formField = "file"

type Handler struct {
	svc *attachment.Service
}

func NewHandler(svc *attachment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{kind}/{ownerID}", h.upload)
	r.Get("/{kind}/{ownerID}", h.list)
	r.Get("/{kind}/{ownerID}/bundle", h.bundle)
	r.Get("/{id}/file", h.file)
	r.Delete("/{id}", h.delete)
}

type attachmentResponse struct {
	ID          uuid.UUID            `json:"id"`
	OwnerKind   attachment.OwnerKind `json:"owner_kind"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	Filename    string               `json:"filename"`
	ContentType string               `json:"content_type"`
	Size        int64                `json:"size"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toResponse(a *attachment.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:          a.ID,
		OwnerKind:   a.Owner.Kind,
		OwnerID:     a.Owner.ID,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
}

func owner(r *http.Request) (attachment.Owner, error) {
	kind := attachment.OwnerKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		return attachment.Owner{}, validation.Field("kind", "must be one of contract shipment invoice receipt")
	}

	id, err := respond.ID(r, "ownerID")
	if err != nil {
		return attachment.Owner{}, err
	}

	return attachment.Owner{Kind: kind, ID: id}, nil
}

// upload streams the file part to the service without buffering the request in memory.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		respond.Error(w, validation.Field(formField, "expected a multipart upload"))
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			respond.Error(w, validation.Field(formField, "is required"))
			return
		}

		if err != nil {
			respond.Error(w, validation.Field(formField, "malformed multipart body"))
			return
		}

		if part.FormName() != formField {
			part.Close()
			continue
		}

		a, err := h.svc.Upload(r.Context(), attachment.UploadParams{
			Owner:     o,
			Filename:  part.FileName(),
			CreatorID: auth.UserID(r.Context()),
		}, part)
		part.Close()

		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, toResponse(a))

		return
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	items, err := h.svc.List(r.Context(), o)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]attachmentResponse, len(items))
	for i, a := range items {
		resp[i] = toResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) file(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	a, rc, err := h.svc.Open(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream attachment", "id", id, "error", err)
	}
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	items, err := h.svc.List(r.Context(), o)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s_%s.zip\"", o.Kind, o.ID))

	// Headers are gone once the archive starts; later failures can only be logged.
	if err := h.svc.Bundle(r.Context(), items, w); err != nil {
		slog.Error("failed to create zip", "owner", o, "error", err)
	}
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
