// Package imports serves bulk imports of spreadsheet exports.
package imports

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	customerhttp "github.com/MrJamesThe3rd/salesdesk/internal/http/customer"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/importer"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

const formField = "file"

type Handler struct {
	importSvc   *importer.Service
	customerSvc *customer.Service
	maxBytes    int64
}

func NewHandler(importSvc *importer.Service, customerSvc *customer.Service, maxBytes int64) *Handler {
	return &Handler{importSvc: importSvc, customerSvc: customerSvc, maxBytes: maxBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/customers", h.importCustomers)
}

type importResponse struct {
	Imported  int                     `json:"imported"`
	Customers []customerhttp.Response `json:"customers"`
}

// importCustomers creates every customer in a CSV or XLSX upload, or none of them. The format
// comes from the optional "format" field, else from the file name.
func (h *Handler) importCustomers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respond.Error(w, validation.Field(formField, "expected a multipart upload within the size limit"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		respond.Error(w, validation.Field(formField, "is required"))
		return
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		if format, err = importer.FormatOf(header.Filename); err != nil {
			respond.Error(w, err)
			return
		}
	}

	params, err := h.importSvc.Customers(format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	created, err := h.customerSvc.Import(r.Context(), params, auth.UserID(r.Context()))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := importResponse{
		Imported:  len(created),
		Customers: make([]customerhttp.Response, 0, len(created)),
	}

	for _, c := range created {
		resp.Customers = append(resp.Customers, customerhttp.NewResponse(c))
	}

	respond.JSON(w, http.StatusCreated, resp)
}
