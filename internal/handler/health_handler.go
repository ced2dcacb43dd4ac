package handlers

import (
	"net/http"

	"socialfeed/internal/database"
)

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler проверяет доступность БД
func HealthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			WriteError(w, "БД недоступна", http.StatusServiceUnavailable)
			return
		}

		WriteSuccess(w, healthResponse{Status: "ok"}, http.StatusOK)
	}
}
