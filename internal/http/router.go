package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/attachment"
	authHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/customer"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/imports"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/report"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/session"
)

type Handlers struct {
	Auth        *authHandler.Handler
	Customers   *customer.Handler
	Contracts   *contract.Handler
	Ledger      *ledger.Handler
	Attachments *attachment.Handler
	Reports     *report.Handler
	Imports     *imports.Handler
}

func New(authn auth.Authenticator, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		// Everything past this point is sales work: purchasing users get 403.
		r.Group(func(r chi.Router) {
			r.Use(session.Authenticate(authn))
			r.Use(session.RequireRole(auth.RoleSales, auth.RoleManager))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))

				r.Route("/customers", h.Customers.Routes)
				r.Route("/contracts", h.Contracts.Routes)
				r.Route("/shipments", h.Ledger.ShipmentRoutes)
				r.Route("/invoices", h.Ledger.InvoiceRoutes)
				r.Route("/receipts", h.Ledger.ReceiptRoutes)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("multipart/form-data"))

				r.Route("/attachments", h.Attachments.Routes)
				r.Route("/imports", h.Imports.Routes)
			})

			r.Route("/reports", h.Reports.Routes)
		})
	})

	return router
}
