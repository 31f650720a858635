package api

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"catclassifier/internal/predictor"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catclassifier_predictions_total",
		Help: "Successful predictions by model version and predicted category.",
	}, []string{"version", "category"})

	predictionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catclassifier_prediction_errors_total",
		Help: "Failed prediction requests by reason.",
	}, []string{"reason"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catclassifier_prediction_duration_seconds",
		Help:    "Time spent classifying a single text.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

func errorReason(err error) string {
	switch {
	case errors.Is(err, predictor.ErrEmptyText):
		return "validation"
	case errors.Is(err, predictor.ErrInvalidVersion):
		return "invalid_version"
	case errors.Is(err, predictor.ErrModelNotLoaded):
		return "not_loaded"
	case errors.Is(err, predictor.ErrPrediction):
		return "prediction"
	default:
		return "internal"
	}
}
