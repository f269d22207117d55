// Package respond holds the JSON plumbing shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	"github.com/MrJamesThe3rd/salesdesk/internal/importer"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type overLimitBody struct {
	Error     string        `json:"error"`
	Kind      progress.Kind `json:"kind"`
	Remaining string        `json:"remaining"`
}

// Page is the JSON shape of a paged list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPage converts a list result with fn.
func NewPage[T, U any](r query.Result[T], fn func(T) U) Page[U] {
	m := query.Map(r, fn)

	return Page[U]{
		Items:      m.Items,
		Page:       m.Page,
		PerPage:    m.PerPage,
		TotalItems: m.TotalItems,
		TotalPages: m.TotalPages,
	}
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &validation.Error{Fields: map[string]string{"body": fmt.Sprintf("invalid JSON: %v", err)}}
	}

	return nil
}

// ID parses the named URL parameter as a UUID.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, validation.Field(name, "must be a valid id")
	}

	return id, nil
}

// OptionalID parses the named query parameter as a UUID, returning nil when it is absent.
func OptionalID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, validation.Field(name, "must be a valid id")
	}

	return &id, nil
}

var statusByError = []struct {
	status int
	errs   []error
}{
	{http.StatusNotFound, []error{
		contract.ErrNotFound, customer.ErrNotFound, attachment.ErrNotFound, attachment.ErrOwnerNotFound,
		ledger.ErrShipmentNotFound, ledger.ErrInvoiceNotFound, ledger.ErrReceiptNotFound,
	}},
	{http.StatusConflict, []error{
		contract.ErrDuplicateNo, contract.ErrInvalidTransition, contract.ErrIncompleteExecution,
		contract.ErrHasLedger, contract.ErrNotExecuting, customer.ErrInUse, auth.ErrEmailTaken,
	}},
	{http.StatusBadRequest, []error{
		contract.ErrUnknownCustomer, importer.ErrNoHeader, importer.ErrEmpty, importer.ErrUnreadable,
	}},
	{http.StatusUnauthorized, []error{auth.ErrInvalidCredentials, auth.ErrInvalidToken}},
	{http.StatusForbidden, []error{auth.ErrForbidden}},
	{http.StatusRequestEntityTooLarge, []error{attachment.ErrTooLarge}},
	{http.StatusUnsupportedMediaType, []error{attachment.ErrUnsupportedType, importer.ErrUnknownFormat}},
}

// Error writes err with the status its kind maps to. Unknown errors are logged and hidden
// behind a 500.
func Error(w http.ResponseWriter, err error) {
	var (
		vErr  *validation.Error
		olErr *progress.OverLimitError
	)

	if errors.As(err, &vErr) {
		JSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: vErr.Fields})
		return
	}

	if errors.As(err, &olErr) {
		JSON(w, http.StatusUnprocessableEntity, overLimitBody{
			Error:     olErr.Error(),
			Kind:      olErr.Kind,
			Remaining: progress.Money(olErr.Remaining),
		})

		return
	}

	for _, m := range statusByError {
		for _, target := range m.errs {
			if errors.Is(err, target) {
				JSON(w, m.status, errorBody{Error: err.Error()})
				return
			}
		}
	}

	slog.Error("request failed", "error", err)
	JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}
