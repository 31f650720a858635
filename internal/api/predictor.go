package api

import (
	"context"

	"catclassifier/internal/predictor"
)

//go:generate mockgen -source=predictor.go -destination=mocks/mock_predictor.go -package=mocks

// Predictor is what the HTTP layer needs from the prediction service.
type Predictor interface {
	Predict(ctx context.Context, text, version string) (predictor.Prediction, error)
	Loaded() bool
	Versions() []string
	DefaultVersion() string
	Reload(ctx context.Context) error
}
