package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfpinhal/extrato/internal/auth"
	"github.com/mfpinhal/extrato/internal/http/category"
	"github.com/mfpinhal/extrato/internal/http/export"
	"github.com/mfpinhal/extrato/internal/http/recurring"
	"github.com/mfpinhal/extrato/internal/http/statement"
	"github.com/mfpinhal/extrato/internal/http/transaction"
	"github.com/mfpinhal/extrato/internal/http/workspace"
)

func New(
	authSvc *auth.Service,
	workspacesV1 *workspace.Handler,
	statementsV1 *statement.Handler,
	transactionsV1 *transaction.Handler,
	categoriesV1 *category.Handler,
	recurringV1 *recurring.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authSvc.Middleware)

		r.Route("/workspaces", func(r chi.Router) {
			workspacesV1.Routes(r)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Use(workspacesV1.Require)

				r.Route("/members", workspacesV1.AddMemberRoutes)

				r.Route("/statements", statementsV1.Routes)

				r.Route("/transactions", func(r chi.Router) {
					transactionsV1.Routes(r)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					categoriesV1.Routes(r)
				})

				r.Route("/recurring", recurringV1.Routes)

				r.Route("/export", exportV1.Routes)
			})
		})
	})

	return router
}
