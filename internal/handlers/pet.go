package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

type PetHandler struct {
	log    *logger.Logger
	petSvc services.PetService
}

func NewPetHandler(log *logger.Logger, petSvc services.PetService) *PetHandler {
	return &PetHandler{
		log:    log.With("handler", "PetHandler"),
		petSvc: petSvc,
	}
}

type createPetRequest struct {
	OwnerID          string  `json:"ownerId"`
	Name             string  `json:"name"`
	Species          string  `json:"species"`
	Breed            string  `json:"breed"`
	AgeMonths        int     `json:"ageMonths"`
	WeightKg         float64 `json:"weightKg"`
	HealthConditions string  `json:"healthConditions"`
}

// POST /api/pets
func (h *PetHandler) Create(c *gin.Context) {
	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_owner_id", err)
		return
	}

	pet, err := h.petSvc.Create(c.Request.Context(), services.CreatePetInput{
		OwnerID:          ownerID,
		Name:             req.Name,
		Species:          req.Species,
		Breed:            req.Breed,
		AgeMonths:        req.AgeMonths,
		WeightKg:         req.WeightKg,
		HealthConditions: req.HealthConditions,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// GET /api/pets/:petId?ownerId=
func (h *PetHandler) Get(c *gin.Context) {
	ownerID, petID, ok := ownerAndPetIDs(c)
	if !ok {
		return
	}
	pet, err := h.petSvc.Get(c.Request.Context(), ownerID, petID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pet)
}

// GET /api/pets?ownerId=
func (h *PetHandler) List(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Query("ownerId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_owner_id", err)
		return
	}
	pets, err := h.petSvc.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pets)
}

// ownerAndPetIDs parses the :petId path param and the ownerId query param.
// Every pet-scoped route requires both so reads stay owner-scoped.
func ownerAndPetIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	petID, err := uuid.Parse(c.Param("petId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pet_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	ownerID, err := uuid.Parse(c.Query("ownerId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_owner_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, petID, true
}
