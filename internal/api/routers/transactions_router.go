package routers

import (
	"net/http"

	"sales_insights/internal/api/handlers/transactions"
	mw "sales_insights/internal/api/middlewares"
)

// transactionsRouter mounts the dashboard endpoints. A non-nil guard protects
// /api/initialize.
func transactionsRouter(h *transactions.Handler, guard mw.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	var initialize http.Handler = http.HandlerFunc(h.InitializeDatabase)
	if guard != nil {
		initialize = guard(initialize)
	}
	mux.Handle("/api/initialize", initialize)

	mux.HandleFunc("/api/transactions", h.ListTransactions)
	mux.HandleFunc("/api/statistics", h.GetStatistics)
	mux.HandleFunc("/api/bar-chart", h.GetBarChart)
	mux.HandleFunc("/api/pie-chart", h.GetPieChart)
	mux.HandleFunc("/api/combined", h.GetCombinedData)

	return mux
}
