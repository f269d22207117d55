package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/contracts.xlsx", h.contracts)
}

// contracts renders the workbook in memory first so a failure still gets a proper error response.
func (h *Handler) contracts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := contract.ListFilter{Search: q.Get("search")}

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

	var buf bytes.Buffer
	if err := h.svc.ContractProgress(r.Context(), filter, &buf); err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"contracts_%s.xlsx\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}
