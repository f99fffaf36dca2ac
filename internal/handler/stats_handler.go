package handler

import (
	"net/http"

	"github.com/seekers/backend/internal/service"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	stats service.StatsService
}

func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/admin/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Get(r.Context())
	if err != nil {
		writeServiceError(w, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
