package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

const defaultListWindowDays = 30

type ObservationHandler struct {
	log    *logger.Logger
	obsSvc services.ObservationService
}

func NewObservationHandler(log *logger.Logger, obsSvc services.ObservationService) *ObservationHandler {
	return &ObservationHandler{
		log:    log.With("handler", "ObservationHandler"),
		obsSvc: obsSvc,
	}
}

type createDiaryEntryRequest struct {
	MoodScore    int       `json:"moodScore"`
	Note         string    `json:"note"`
	BehaviorTags []string  `json:"behaviorTags"`
	EntryDate    time.Time `json:"entryDate"`
}

// POST /api/pets/:petId/diary?ownerId=
func (h *ObservationHandler) AddDiaryEntry(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	var req createDiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := h.obsSvc.AddDiaryEntry(c.Request.Context(), ownerID, petID, services.CreateDiaryEntryInput{
		MoodScore:    req.MoodScore,
		Note:         req.Note,
		BehaviorTags: req.BehaviorTags,
		EntryDate:    req.EntryDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/pets/:petId/diary?ownerId=
func (h *ObservationHandler) ListDiaryEntries(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	entries, err := h.obsSvc.ListDiaryEntries(c.Request.Context(), ownerID, petID, listWindow())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entries)
}

type createHealthMetricRequest struct {
	MetricType string    `json:"metricType"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recordedAt"`
}

// POST /api/pets/:petId/metrics?ownerId=
func (h *ObservationHandler) AddHealthMetric(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	var req createHealthMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	metric, err := h.obsSvc.AddHealthMetric(c.Request.Context(), ownerID, petID, services.CreateHealthMetricInput{
		MetricType: req.MetricType,
		Value:      req.Value,
		Unit:       req.Unit,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, metric)
}

// GET /api/pets/:petId/metrics?ownerId=
func (h *ObservationHandler) ListHealthMetrics(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	metrics, err := h.obsSvc.ListHealthMetrics(c.Request.Context(), ownerID, petID, listWindow())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, metrics)
}

type createWellnessScoreRequest struct {
	Score     int                `json:"score"`
	Factors   map[string]float64 `json:"factors"`
	ScoreDate time.Time          `json:"scoreDate"`
}

// POST /api/pets/:petId/wellness?ownerId=
func (h *ObservationHandler) AddWellnessScore(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	var req createWellnessScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	score, err := h.obsSvc.AddWellnessScore(c.Request.Context(), ownerID, petID, services.CreateWellnessScoreInput{
		Score:     req.Score,
		Factors:   req.Factors,
		ScoreDate: req.ScoreDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

// GET /api/pets/:petId/wellness?ownerId=
func (h *ObservationHandler) ListWellnessScores(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	scores, err := h.obsSvc.ListWellnessScores(c.Request.Context(), ownerID, petID, listWindow())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, scores)
}

type recordActivityRequest struct {
	Action string         `json:"action"`
	Detail map[string]any `json:"detail"`
}

// POST /api/pets/:petId/activity?ownerId=
func (h *ObservationHandler) RecordActivity(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	var req recordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := h.obsSvc.RecordActivity(c.Request.Context(), ownerID, petID, req.Action, req.Detail)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func listWindow() time.Time {
	return time.Now().AddDate(0, 0, -defaultListWindowDays)
}
