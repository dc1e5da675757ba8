package health

import (
	"net/http"
	"time"

	"sales_insights/internal/api/handlers"
	"sales_insights/pkg/utils"
)

type StoreStatus interface {
	Len() int
	LoadedAt() time.Time
}

func Handler(store StoreStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !handlers.AllowMethods(w, r, http.MethodGet) {
			return
		}

		response := struct {
			Status   string     `json:"status"`
			Records  int        `json:"records"`
			LoadedAt *time.Time `json:"loadedAt,omitempty"`
		}{
			Status:  "ok",
			Records: store.Len(),
		}
		if at := store.LoadedAt(); !at.IsZero() {
			response.LoadedAt = &at
		}

		utils.WriteJSON(w, response)
	}
}
