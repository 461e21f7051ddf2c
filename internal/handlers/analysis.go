package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

type AnalysisHandler struct {
	log         *logger.Logger
	analysisSvc services.AnalysisService
}

func NewAnalysisHandler(log *logger.Logger, analysisSvc services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		log:         log.With("handler", "AnalysisHandler"),
		analysisSvc: analysisSvc,
	}
}

type generateAnalysisRequest struct {
	PetID   string `json:"petId"`
	OwnerID string `json:"ownerId"`
}

type generatedCounts struct {
	Predictions   int `json:"predictions"`
	Warnings      int `json:"warnings"`
	Interventions int `json:"interventions"`
	RiskScore     int `json:"riskScore"`
}

type generateAnalysisResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message,omitempty"`
	Error     string           `json:"error,omitempty"`
	Generated *generatedCounts `json:"generated,omitempty"`
}

// POST /api/analysis/predictive
// Runs the predictive pipeline once for the given pet. Insufficient data is
// a successful-but-empty response, not an error.
func (h *AnalysisHandler) GeneratePredictive(c *gin.Context) {
	var req generateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, generateAnalysisResponse{Success: false, Error: "invalid request body"})
		return
	}

	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, generateAnalysisResponse{Success: false, Error: "petId is required and must be a uuid"})
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, generateAnalysisResponse{Success: false, Error: "ownerId is required and must be a uuid"})
		return
	}

	outcome, err := h.analysisSvc.GeneratePredictiveAnalysis(c.Request.Context(), ownerID, petID)
	if err != nil {
		h.log.Error("Predictive analysis failed", "pet_id", petID.String(), "owner_id", ownerID.String(), "error", err)
		c.JSON(http.StatusInternalServerError, generateAnalysisResponse{Success: false, Error: err.Error()})
		return
	}

	if !outcome.Generated {
		c.JSON(http.StatusOK, generateAnalysisResponse{Success: false, Message: outcome.Message})
		return
	}

	c.JSON(http.StatusOK, generateAnalysisResponse{
		Success: true,
		Generated: &generatedCounts{
			Predictions:   outcome.Predictions,
			Warnings:      outcome.Warnings,
			Interventions: outcome.Interventions,
			RiskScore:     outcome.RiskScore,
		},
	})
}
