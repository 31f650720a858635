package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catclassifier/internal/predictor"
)

const (
	serviceName = "Project Category Classifier API"
	apiVersion  = "1.0.0"
)

type Handler struct {
	predictor Predictor
	logger    *zap.Logger
}

func NewHandler(p Predictor, logger *zap.Logger) *Handler {
	return &Handler{predictor: p, logger: logger}
}

type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type VersionsResponse struct {
	Versions []string `json:"versions"`
	Default  string   `json:"default"`
}

type PredictRequest struct {
	Text string `json:"text" binding:"required"`
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	status := "model not loaded"
	if h.predictor.Loaded() {
		status = "ready"
	}
	c.JSON(http.StatusOK, RootResponse{Message: serviceName, Status: status, Version: apiVersion})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", ModelLoaded: h.predictor.Loaded()})
}

// Versions handles GET /versions
func (h *Handler) Versions(c *gin.Context) {
	c.JSON(http.StatusOK, VersionsResponse{
		Versions: nonNil(h.predictor.Versions()),
		Default:  h.predictor.DefaultVersion(),
	})
}

// Predict handles POST /predict?version=<token>
func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		predictionErrors.WithLabelValues("validation").Inc()
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	out, err := h.predictor.Predict(c.Request.Context(), req.Text, c.Query("version"))
	if err != nil {
		predictionErrors.WithLabelValues(errorReason(err)).Inc()
		respondError(c, err)
		return
	}
	predictionDuration.Observe(time.Since(start).Seconds())
	predictionsTotal.WithLabelValues(out.Version, out.Category).Inc()

	c.JSON(http.StatusOK, out)
}

// Reload handles POST /admin/reload
func (h *Handler) Reload(c *gin.Context) {
	if err := h.predictor.Reload(c.Request.Context()); err != nil {
		h.logger.Error("Model reload failed", zap.Error(err))
		respondError(c, err)
		return
	}
	versions := nonNil(h.predictor.Versions())
	h.logger.Info("Models reloaded", zap.Strings("versions", versions))
	c.JSON(http.StatusOK, VersionsResponse{Versions: versions, Default: h.predictor.DefaultVersion()})
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

var _ Predictor = (*predictor.Service)(nil)
