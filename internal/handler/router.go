package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/infra/observability"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterConfig carries the collaborators the router wires into handlers.
type RouterConfig struct {
	Ledger         *service.LedgerService
	Advisor        *service.AdvisorService
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /api/v1 requires a valid Supabase JWT.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 (protected) ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JWTAuthMiddleware(cfg.JWTSecret, cfg.Logger))

		// Transactions
		r.Get("/transactions", listTransactionsHandler(cfg.Ledger, cfg.Logger))
		r.Post("/transactions", createTransactionHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/transactions/{transactionId}", deleteTransactionHandler(cfg.Ledger, cfg.Logger))

		// Fixed expenses
		r.Get("/fixed-expenses", listFixedExpensesHandler(cfg.Ledger, cfg.Logger))
		r.Post("/fixed-expenses", createFixedExpenseHandler(cfg.Ledger, cfg.Logger))
		r.Put("/fixed-expenses/{expenseId}", updateFixedExpenseHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/fixed-expenses/{expenseId}", deleteFixedExpenseHandler(cfg.Ledger, cfg.Logger))
		r.Post("/fixed-expenses/{expenseId}/pay", markFixedExpensePaidHandler(cfg.Ledger, cfg.Logger))
		r.Post("/fixed-expenses/{expenseId}/unpay", unmarkFixedExpensePaidHandler(cfg.Ledger, cfg.Logger))

		// Debts
		r.Get("/debts", listDebtsHandler(cfg.Ledger, cfg.Logger))
		r.Post("/debts", createDebtHandler(cfg.Ledger, cfg.Logger))
		r.Put("/debts/{debtId}", updateDebtHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/debts/{debtId}", deleteDebtHandler(cfg.Ledger, cfg.Logger))
		r.Post("/debts/{debtId}/pay", payDebtHandler(cfg.Ledger, cfg.Logger))

		// Income reminders
		r.Get("/income-reminders", listIncomeRemindersHandler(cfg.Ledger, cfg.Logger))
		r.Post("/income-reminders", createIncomeReminderHandler(cfg.Ledger, cfg.Logger))
		r.Put("/income-reminders/{reminderId}", updateIncomeReminderHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/income-reminders/{reminderId}", deleteIncomeReminderHandler(cfg.Ledger, cfg.Logger))

		// Budgets
		r.Get("/budgets/{year}/{month}", getBudgetHandler(cfg.Ledger, cfg.Logger))
		r.Put("/budgets/{year}/{month}", saveBudgetHandler(cfg.Ledger, cfg.Logger))

		// Payment methods
		r.Get("/payment-methods", listPaymentMethodsHandler(cfg.Ledger, cfg.Logger))
		r.Post("/payment-methods", createPaymentMethodHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/payment-methods/{methodId}", deletePaymentMethodHandler(cfg.Ledger, cfg.Logger))

		// Shopping list & stores
		r.Get("/shopping/items", listShoppingItemsHandler(cfg.Ledger, cfg.Logger))
		r.Post("/shopping/items", createShoppingItemHandler(cfg.Ledger, cfg.Logger))
		r.Post("/shopping/items/{itemId}/toggle", toggleShoppingItemHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/shopping/items/{itemId}", deleteShoppingItemHandler(cfg.Ledger, cfg.Logger))
		r.Get("/shopping/stores", listStoresHandler(cfg.Ledger, cfg.Logger))
		r.Post("/shopping/stores", createStoreHandler(cfg.Ledger, cfg.Logger))
		r.Delete("/shopping/stores/{storeId}", deleteStoreHandler(cfg.Ledger, cfg.Logger))
		r.Post("/shopping/compare", compareShoppingHandler(cfg.Advisor, cfg.Logger))

		// Aggregates & alerts
		r.Get("/summary", summaryHandler(cfg.Ledger, cfg.Logger))
		r.Get("/alerts", alertsHandler(cfg.Ledger, cfg.Logger))

		// Advisor
		r.Post("/advisor", advisorHandler(cfg.Advisor, cfg.Logger))
		r.Get("/metrics/advisor", advisorMetricsHandler(cfg.Metrics, cfg.Logger))

		// Categories (static reference data for the frontend)
		r.Get("/categories", categoriesHandler())
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func categoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{
			"expense": domain.ExpenseCategories,
			"income":  domain.IncomeCategories,
		})
	}
}

func advisorMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetAdvisorSnapshot())
	}
}
