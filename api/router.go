package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siherrmann/ranker/api/handler"
	"github.com/siherrmann/ranker/api/middleware"
)

// SetupRouter creates the gin engine serving the given graphs
func SetupRouter(graphs map[string]handler.Traverser, version string, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())

	names := make([]string, 0, len(graphs))
	for name := range graphs {
		names = append(names, name)
	}

	healthHandler := handler.NewHealthHandler(version, names)
	rankHandler := handler.NewRankHandler(graphs)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	traversers := r.Group("/graphs/:graph/traversers")
	{
		traversers.POST("/personalrank", rankHandler.PersonalRank)
		traversers.GET("/kneighbor", rankHandler.KNeighbor)
	}

	return r
}
