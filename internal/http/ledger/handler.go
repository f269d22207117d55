// Package ledger serves shipments, invoices and receipts.
package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ShipmentRoutes(r chi.Router) {
	r.Post("/", h.createShipment)
	r.Get("/", h.listShipments)
	r.Get("/{id}", h.getShipment)
	r.Patch("/{id}", h.updateShipment)
	r.Delete("/{id}", h.deleteShipment)
}

func (h *Handler) InvoiceRoutes(r chi.Router) {
	r.Post("/", h.createInvoice)
	r.Get("/", h.listInvoices)
	r.Get("/{id}", h.getInvoice)
	r.Patch("/{id}", h.updateInvoice)
	r.Delete("/{id}", h.deleteInvoice)
}

func (h *Handler) ReceiptRoutes(r chi.Router) {
	r.Post("/", h.createReceipt)
	r.Get("/", h.listReceipts)
	r.Get("/{id}", h.getReceipt)
	r.Patch("/{id}", h.updateReceipt)
	r.Delete("/{id}", h.deleteReceipt)
}

// scope holds the list parameters shared by every ledger kind.
type scope struct {
	contractID *uuid.UUID
	contractNo string
	search     string
	page       query.Page
}

func parseScope(r *http.Request) (scope, error) {
	q := r.URL.Query()

	contractID, err := respond.OptionalID(r, "contract")
	if err != nil {
		return scope{}, err
	}

	return scope{
		contractID: contractID,
		contractNo: q.Get("contract_no"),
		search:     q.Get("search"),
		page:       query.PageFromQuery(q),
	}, nil
}
