package app

import (
	"github.com/pawsense/pawsense-backend/internal/handlers"
	"github.com/pawsense/pawsense-backend/internal/logger"
)

type Handlers struct {
	Pet         *handlers.PetHandler
	Observation *handlers.ObservationHandler
	Analysis    *handlers.AnalysisHandler
	Insights    *handlers.InsightsHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Pet:         handlers.NewPetHandler(log, services.Pet),
		Observation: handlers.NewObservationHandler(log, services.Observation),
		Analysis:    handlers.NewAnalysisHandler(log, services.Analysis),
		Insights:    handlers.NewInsightsHandler(log, services.Insights),
	}
}
