package predictor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"catclassifier/internal/registry"
)

type Prediction struct {
	Category         string             `json:"category"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities"`
	Version          string             `json:"version"`
}

// Service answers prediction requests from the pipelines held by a registry.
type Service struct {
	registry       *registry.Registry
	defaultVersion string
	logger         *zap.Logger
}

func NewService(reg *registry.Registry, defaultVersion string, logger *zap.Logger) *Service {
	if defaultVersion == "" {
		defaultVersion = "v1"
	}
	return &Service{registry: reg, defaultVersion: defaultVersion, logger: logger}
}

func (s *Service) DefaultVersion() string { return s.defaultVersion }

func (s *Service) Loaded() bool { return s.registry.Len() > 0 }

func (s *Service) Versions() []string { return s.registry.Versions() }

// Predict resolves version (empty means the default), then classifies text.
func (s *Service) Predict(ctx context.Context, text, version string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}
	if version == "" {
		version = s.defaultVersion
	}

	p, ok := s.registry.Get(version)
	if !ok {
		valid := s.registry.Versions()
		if len(valid) == 0 {
			return Prediction{}, ErrModelNotLoaded
		}
		return Prediction{}, &InvalidVersionError{Version: version, Valid: valid}
	}

	r, err := p.Classify(text)
	if err != nil {
		s.logger.Error("Prediction failed", zap.String("version", version), zap.Error(err))
		return Prediction{}, fmt.Errorf("%w: %v", ErrPrediction, err)
	}
	return Prediction{
		Category:         r.Category,
		Confidence:       r.Confidence,
		AllProbabilities: r.Probabilities,
		Version:          version,
	}, nil
}

// Reload rescans the model directory.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.registry.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	return nil
}
