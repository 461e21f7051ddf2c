package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pawsense/pawsense-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName        string
	AllowOrigins       []string
	PetHandler         *handlers.PetHandler
	ObservationHandler *handlers.ObservationHandler
	AnalysisHandler    *handlers.AnalysisHandler
	InsightsHandler    *handlers.InsightsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/pets", cfg.PetHandler.Create)
		api.GET("/pets", cfg.PetHandler.List)
		api.GET("/pets/:petId", cfg.PetHandler.Get)

		api.POST("/pets/:petId/diary", cfg.ObservationHandler.AddDiaryEntry)
		api.GET("/pets/:petId/diary", cfg.ObservationHandler.ListDiaryEntries)
		api.POST("/pets/:petId/metrics", cfg.ObservationHandler.AddHealthMetric)
		api.GET("/pets/:petId/metrics", cfg.ObservationHandler.ListHealthMetrics)
		api.POST("/pets/:petId/wellness", cfg.ObservationHandler.AddWellnessScore)
		api.GET("/pets/:petId/wellness", cfg.ObservationHandler.ListWellnessScores)
		api.POST("/pets/:petId/activity", cfg.ObservationHandler.RecordActivity)

		api.GET("/pets/:petId/insights", cfg.InsightsHandler.GetPetInsights)

		api.POST("/analysis/predictive", cfg.AnalysisHandler.GeneratePredictive)
	}

	return router
}
