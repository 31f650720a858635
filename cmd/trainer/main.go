package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"catclassifier/internal/data"
	"catclassifier/internal/models"
	"catclassifier/pkg/utils"
)

var smokeTexts = []string{
	"Add new feature to dashboard",
	"Create marketing campaign",
	"Design new icon set",
	"Research best practices",
}

type options struct {
	dataPath    string
	modelDir    string
	versions    []string
	unversioned bool
	seed        bool
	plotPath    string
}

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	dataPath := flag.String("data", "training_data.csv", "CSV with text,category columns")
	modelDir := flag.String("models", "models", "Directory the model files are written to")
	versions := flag.String("versions", "v1", "Comma-separated version tags to save the model under")
	unversioned := flag.Bool("unversioned", true, "Also write category_classifier.gob")
	seed := flag.Bool("seed", false, "Write the built-in sample dataset when the CSV does not exist")
	plotPath := flag.String("plot", "", "Optional PNG path for a category distribution chart")
	flag.Parse()

	opts := options{
		dataPath:    *dataPath,
		modelDir:    *modelDir,
		versions:    splitVersions(*versions),
		unversioned: *unversioned,
		seed:        *seed,
		plotPath:    *plotPath,
	}
	p, paths, err := train(opts, logger)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}
	for _, path := range paths {
		logger.Info("Model saved", zap.String("path", path))
	}

	fmt.Println("\nTest predictions:")
	for _, text := range smokeTexts {
		r, err := p.Classify(text)
		if err != nil {
			logger.Warn("Smoke test prediction failed", zap.String("text", text), zap.Error(err))
			continue
		}
		fmt.Printf("  '%s' -> %s (confidence: %.2f%%)\n", text, r.Category, r.Confidence*100)
	}
}

func splitVersions(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Compact(parts))
}

// train fits a pipeline on opts.dataPath and writes it to every requested
// file name. It returns the pipeline and the paths written.
func train(opts options, logger *zap.Logger) (*models.Pipeline, []string, error) {
	for _, v := range opts.versions {
		if !models.ValidVersion(v) {
			return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidVersion, v)
		}
	}
	if len(opts.versions) == 0 && !opts.unversioned {
		return nil, nil, errors.New("nothing to write: no versions and -unversioned=false")
	}

	if opts.seed {
		if _, err := os.Stat(opts.dataPath); errors.Is(err, os.ErrNotExist) {
			logger.Info("Writing sample dataset", zap.String("out", opts.dataPath), zap.Int("n", len(data.SampleSet)))
			if err := data.WriteSample(opts.dataPath); err != nil {
				return nil, nil, fmt.Errorf("write sample dataset: %w", err)
			}
		}
	}

	set, err := data.LoadTrainingSet(opts.dataPath)
	if err != nil {
		return nil, nil, err
	}
	counts := data.CountByCategory(set)
	logger.Info("Training data loaded",
		zap.String("path", opts.dataPath),
		zap.Int("examples", len(set)),
		zap.Any("distribution", lo.SliceToMap(counts, func(c data.CategoryCount) (string, int) { return c.Category, c.Count })),
	)

	logger.Info("Training model...")
	p := models.NewPipeline()
	if err := p.Fit(set.Texts(), set.Labels()); err != nil {
		return nil, nil, err
	}
	logger.Info("Model trained",
		zap.String("model", p.Name()),
		zap.Strings("classes", p.Classes()),
		zap.Int("vocabulary", p.Vectorizer.NumFeatures()),
	)

	targets := []string{}
	if opts.unversioned {
		targets = append(targets, "")
	}
	targets = append(targets, opts.versions...)
	paths := make([]string, 0, len(targets))
	for _, v := range targets {
		p.Version = v
		path := filepath.Join(opts.modelDir, models.FileName(v))
		if err := models.Save(path, p); err != nil {
			return nil, nil, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	if opts.plotPath != "" {
		if err := plotDistribution(opts.plotPath, counts); err != nil {
			logger.Warn("Failed to save distribution chart", zap.Error(err))
		} else {
			logger.Info("Distribution chart saved", zap.String("png", opts.plotPath))
		}
	}
	return p, paths, nil
}

func plotDistribution(path string, counts []data.CategoryCount) error {
	p := plot.New()
	p.Title.Text = "Training examples per category"
	p.Y.Label.Text = "Examples"

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		names[i] = c.Category
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
