package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

type InsightsHandler struct {
	log         *logger.Logger
	insightsSvc services.InsightsService
}

func NewInsightsHandler(log *logger.Logger, insightsSvc services.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		log:         log.With("handler", "InsightsHandler"),
		insightsSvc: insightsSvc,
	}
}

// GET /api/pets/:petId/insights?ownerId=
// Current derived records: latest risk assessment, unexpired warnings,
// recent predictions and interventions.
func (h *InsightsHandler) GetPetInsights(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	insights, err := h.insightsSvc.GetPetInsights(c.Request.Context(), ownerID, petID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, insights)
}
