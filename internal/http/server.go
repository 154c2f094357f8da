// Package http wires Tallyup's services to a JSON REST surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallyup/tallyup/internal/middleware"
	"github.com/tallyup/tallyup/internal/service"
)

// Server holds the application services behind the HTTP handlers.
type Server struct {
	groups   *service.GroupService
	expenses *service.ExpenseService
	ledgers  *service.LedgerService
	finance  *service.FinanceService
}

// NewServer creates a Server from the application services.
func NewServer(
	groups *service.GroupService,
	expenses *service.ExpenseService,
	ledgers *service.LedgerService,
	finance *service.FinanceService,
) *Server {
	return &Server{
		groups:   groups,
		expenses: expenses,
		ledgers:  ledgers,
		finance:  finance,
	}
}

// Router builds the chi router with logging, metrics and CORS middleware.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.createGroup)
			r.Get("/", s.listGroups)
			r.Route("/{groupID}", func(r chi.Router) {
				r.Get("/", s.getGroup)
				r.Delete("/", s.deleteGroup)
				r.Post("/members", s.addMember)
				r.Delete("/members/{member}", s.removeMember)

				r.Get("/balances", s.getBalances)
				r.Get("/settlements", s.getSettlements)

				r.Get("/transactions", s.listTransactions)
				r.Post("/transactions", s.addExpense)
				r.Patch("/transactions/{txID}", s.updateExpense)
				r.Delete("/transactions/{txID}", s.deleteTransaction)
				r.Post("/payments", s.recordPayment)
			})
		})

		r.Route("/finance", func(r chi.Router) {
			r.Post("/incomes", s.addIncome)
			r.Get("/incomes", s.listIncomes)
			r.Delete("/incomes/{id}", s.deleteIncome)

			r.Post("/expenses", s.addPersonalExpense)
			r.Get("/expenses", s.listPersonalExpenses)
			r.Delete("/expenses/{id}", s.deletePersonalExpense)

			r.Post("/bills", s.addBill)
			r.Get("/bills", s.listBills)
			r.Patch("/bills/{id}/paid", s.setBillPaid)
			r.Delete("/bills/{id}", s.deleteBill)

			r.Get("/summary", s.getSummary)
		})
	})

	return router
}
