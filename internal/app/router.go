package app

import (
	"github.com/gin-gonic/gin"

	"github.com/pawsense/pawsense-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AllowOrigins:       cfg.AllowOrigins,
		PetHandler:         handlers.Pet,
		ObservationHandler: handlers.Observation,
		AnalysisHandler:    handlers.Analysis,
		InsightsHandler:    handlers.Insights,
	})
}
