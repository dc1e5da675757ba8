package routers

import (
	"net/http"

	"sales_insights/internal/api/handlers/auth"
)

func adminRouter(h *auth.AdminHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/admin/login", h.Login)

	return mux
}
