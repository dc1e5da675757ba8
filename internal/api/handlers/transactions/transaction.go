package transactions

import (
	"context"
	"net/http"
	"time"

	"sales_insights/internal/api/handlers"
	"sales_insights/internal/models"
	"sales_insights/internal/services"
	"sales_insights/pkg/utils"
)

type Analytics interface {
	ListTransactions(ctx context.Context, params services.ListParams) (models.TransactionList, error)
	Statistics(ctx context.Context, month time.Month) (models.Statistics, error)
	PriceHistogram(ctx context.Context, month time.Month) ([]models.PriceRangeCount, error)
	CategoryDistribution(ctx context.Context, month time.Month) ([]models.CategoryCount, error)
	Combined(ctx context.Context, month time.Month) (models.CombinedReport, error)
}

type Initializer interface {
	Initialize(ctx context.Context) (models.SeedResult, error)
}

type Handler struct {
	analytics   Analytics
	seeder      Initializer
	seedTimeout time.Duration
}

func NewHandler(analytics Analytics, seeder Initializer, seedTimeout time.Duration) *Handler {
	return &Handler{analytics: analytics, seeder: seeder, seedTimeout: seedTimeout}
}

// FUNC TO REPLACE ALL TRANSACTIONS WITH THE SEED DATASET
func (h *Handler) InitializeDatabase(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.seedTimeout)
	defer cancel()

	result, err := h.seeder.Initialize(ctx)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	response := struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Data    models.SeedResult `json:"data"`
	}{
		Status:  "success",
		Message: "Database initialized with seed data",
		Data:    result,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO LIST TRANSACTIONS WITH SEARCH, MONTH AND PAGINATION
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet) {
		return
	}

	params, err := handlers.ParseListParams(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	list, err := h.analytics.ListTransactions(r.Context(), params)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, list)
}

// FUNC TO GET SALE STATISTICS FOR A MONTH
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet) {
		return
	}

	month, err := handlers.ParseMonthQuery(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	stats, err := h.analytics.Statistics(r.Context(), month)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, stats)
}

// FUNC TO GET THE PRICE RANGE HISTOGRAM FOR A MONTH
func (h *Handler) GetBarChart(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet) {
		return
	}

	month, err := handlers.ParseMonthQuery(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	bars, err := h.analytics.PriceHistogram(r.Context(), month)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, bars)
}

// FUNC TO GET THE CATEGORY DISTRIBUTION FOR A MONTH
func (h *Handler) GetPieChart(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet) {
		return
	}

	month, err := handlers.ParseMonthQuery(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	pie, err := h.analytics.CategoryDistribution(r.Context(), month)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, pie)
}

// FUNC TO GET STATISTICS, BAR CHART AND PIE CHART IN ONE RESPONSE
func (h *Handler) GetCombinedData(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodGet) {
		return
	}

	month, err := handlers.ParseMonthQuery(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	report, err := h.analytics.Combined(r.Context(), month)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, report)
}
