package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	APIKey      string
	CORSOrigins []string
}

// Setup creates and configures the Gin router.
func Setup(p Predictor, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(Logger(logger))
	router.Use(Recovery(logger))
	router.Use(CORS(cfg.CORSOrigins))

	h := NewHandler(p, logger)
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/versions", h.Versions)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guarded := router.Group("/")
	guarded.Use(APIKey(cfg.APIKey))
	guarded.POST("/predict", h.Predict)
	guarded.POST("/admin/reload", h.Reload)

	return router
}
