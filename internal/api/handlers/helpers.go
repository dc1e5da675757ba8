package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sales_insights/internal/services"
	"sales_insights/pkg/utils"
)

// ParseListParams reads search, month, page and perPage from the query
// string, applying defaults for absent values.
func ParseListParams(r *http.Request) (services.ListParams, error) {
	query := r.URL.Query()

	month, err := services.ParseMonth(query.Get("month"))
	if err != nil {
		return services.ListParams{}, err
	}

	page, err := parsePositiveInt(query.Get("page"), "page", services.DefaultPage)
	if err != nil {
		return services.ListParams{}, err
	}

	perPage, err := parsePositiveInt(query.Get("perPage"), "perPage", services.DefaultPerPage)
	if err != nil {
		return services.ListParams{}, err
	}

	return services.ListParams{
		FilterParams: services.FilterParams{
			Search: query.Get("search"),
			Month:  month,
		},
		Page:    page,
		PerPage: perPage,
	}, nil
}

// ParseMonthQuery reads the optional month query parameter.
func ParseMonthQuery(r *http.Request) (time.Month, error) {
	return services.ParseMonth(r.URL.Query().Get("month"))
}

func parsePositiveInt(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.ValidationError("%s must be a number", name)
	}
	if n < 1 {
		return 0, utils.ValidationError("%s must be at least 1", name)
	}
	return n, nil
}

// AllowMethods writes 405 and returns false unless r uses one of methods.
func AllowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	return false
}
