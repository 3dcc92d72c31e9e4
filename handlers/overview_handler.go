package handlers

import (
	"net/http"

	"scoreboard/services"

	"github.com/gin-gonic/gin"
)

type OverviewHandler struct {
	overview *services.OverviewService
}

func NewOverviewHandler(overview *services.OverviewService) *OverviewHandler {
	return &OverviewHandler{
		overview: overview,
	}
}

// GetOverview returns the per-game summaries used by the overview page.
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	summaries, err := h.overview.Summaries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}
