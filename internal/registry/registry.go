package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"catclassifier/internal/models"
)

// Registry maps version tokens to pipelines decoded from the model
// directory. It is populated by Refresh and never touches disk otherwise.
type Registry struct {
	dir    string
	logger *zap.Logger

	mu     sync.RWMutex
	models map[string]*models.Pipeline
}

func New(dir string, logger *zap.Logger) *Registry {
	return &Registry{dir: dir, logger: logger, models: map[string]*models.Pipeline{}}
}

// Refresh rescans the directory and replaces the registry contents in one
// swap. Files that fail to decode are left out and reported in the returned
// error; every file that did decode is still installed.
func (r *Registry) Refresh(ctx context.Context) error {
	paths, err := filepath.Glob(models.VersionGlob(r.dir))
	if err != nil {
		return fmt.Errorf("scan %s: %w", r.dir, err)
	}
	sort.Strings(paths)

	loaded := make(map[string]*models.Pipeline, len(paths))
	var errs error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		version, ok := models.VersionFromFile(path)
		if !ok {
			r.logger.Warn("Ignoring model file with invalid version", zap.String("path", path))
			continue
		}
		p, err := models.Load(path)
		if err != nil {
			r.logger.Error("Failed to load model", zap.String("version", version), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("version %s: %w", version, err))
			continue
		}
		loaded[version] = p
		r.logger.Info("Model loaded",
			zap.String("version", version),
			zap.Strings("classes", p.Classes()),
			zap.Int("vocabulary", p.Vectorizer.NumFeatures()),
		)
	}

	r.mu.Lock()
	r.models = loaded
	r.mu.Unlock()

	if len(loaded) == 0 && errs == nil {
		r.logger.Warn("No models found, run the trainer first", zap.String("dir", r.dir))
	}
	return errs
}

func (r *Registry) Get(version string) (*models.Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.models[version]
	return p, ok
}

// Versions returns the known version tokens in sorted order.
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v := lo.Keys(r.models)
	sort.Strings(v)
	return v
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}
