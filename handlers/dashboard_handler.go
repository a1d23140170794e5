package handlers

import (
	"net/http"

	"github.com/sgce/sports-competition-system/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"dashboard": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
