package routers

import (
	"net/http"

	"sales_insights/internal/api/handlers/auth"
	"sales_insights/internal/api/handlers/health"
	"sales_insights/internal/api/handlers/transactions"
	mw "sales_insights/internal/api/middlewares"
)

type Dependencies struct {
	Transactions *transactions.Handler
	Admin        *auth.AdminHandler
	Store        health.StoreStatus
	// InitializeGuard wraps /api/initialize when admin auth is enabled.
	InitializeGuard mw.Middleware
}

func MainRouter(deps Dependencies) *http.ServeMux {

	mux := http.NewServeMux()

	aRouter := adminRouter(deps.Admin)
	mux.Handle("/api/admin/", aRouter)

	tRouter := transactionsRouter(deps.Transactions, deps.InitializeGuard)
	mux.Handle("/api/", tRouter)

	mux.HandleFunc("/healthz", health.Handler(deps.Store))

	return mux
}
