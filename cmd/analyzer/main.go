package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"catclassifier/internal/data"
	"catclassifier/internal/models"
)

type curvePoint struct {
	Size     int
	TrainAcc float64
	TestAcc  float64
}

func main() {
	dataPath := flag.String("data", "training_data.csv", "Input CSV")
	folds := flag.Int("folds", 5, "Number of cross-validation folds")
	points := flag.Int("points", 5, "Number of points on the curve")
	seed := flag.Int64("seed", 42, "Shuffle seed")
	outImg := flag.String("out_img", "reports/learning_curve.png", "Output PNG")
	outCsv := flag.String("out_csv", "reports/learning_curve.csv", "Output CSV")
	flag.Parse()

	set, err := data.LoadTrainingSet(*dataPath)
	if err != nil {
		fmt.Println("Failed to load dataset:", err)
		os.Exit(1)
	}

	curve, err := learningCurve(set, *folds, *points, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Println("Evaluation failed:", err)
		os.Exit(1)
	}
	for _, p := range curve {
		fmt.Printf("size=%d | train=%.3f | test=%.3f\n", p.Size, p.TrainAcc, p.TestAcc)
	}

	if err := writeCSV(*outCsv, curve); err != nil {
		fmt.Println("Failed to write CSV:", err)
	} else {
		fmt.Println("Curve saved to:", *outCsv)
	}
	if err := plotCurve(*outImg, curve); err != nil {
		fmt.Println("Failed to write PNG:", err)
	} else {
		fmt.Println("Chart saved to:", *outImg)
	}
}

// learningCurve shuffles set, splits it into k folds and, for growing
// training sizes, averages train and held-out accuracy over the folds.
func learningCurve(set data.TrainingSet, k, points int, rng *rand.Rand) ([]curvePoint, error) {
	if k < 2 {
		return nil, errors.New("need at least 2 folds")
	}
	if len(set) < k {
		return nil, fmt.Errorf("need at least %d examples, have %d", k, len(set))
	}
	if points < 1 {
		points = 1
	}
	shuffled := make(data.TrainingSet, len(set))
	for i, j := range rng.Perm(len(set)) {
		shuffled[i] = set[j]
	}

	minTrain := len(shuffled) - int(math.Ceil(float64(len(shuffled))/float64(k)))
	sizes := make([]int, 0, points)
	for i := 1; i <= points; i++ {
		s := int(math.Round(float64(i) / float64(points) * float64(minTrain)))
		if s < 1 {
			s = 1
		}
		if len(sizes) == 0 || s > sizes[len(sizes)-1] {
			sizes = append(sizes, s)
		}
	}

	curve := make([]curvePoint, len(sizes))
	for i, s := range sizes {
		curve[i].Size = s
	}
	for f := 0; f < k; f++ {
		train, test := foldSplit(shuffled, k, f)
		for i, s := range sizes {
			sub := train[:s]
			p := models.NewPipeline()
			if err := p.Fit(sub.Texts(), sub.Labels()); err != nil {
				return nil, fmt.Errorf("fold %d size %d: %w", f, s, err)
			}
			trainAcc, err := score(p, sub)
			if err != nil {
				return nil, fmt.Errorf("fold %d size %d: %w", f, s, err)
			}
			testAcc, err := score(p, test)
			if err != nil {
				return nil, fmt.Errorf("fold %d size %d: %w", f, s, err)
			}
			curve[i].TrainAcc += trainAcc / float64(k)
			curve[i].TestAcc += testAcc / float64(k)
		}
	}
	return curve, nil
}

func foldSplit(set data.TrainingSet, k, fold int) (train, test data.TrainingSet) {
	for i, e := range set {
		if i%k == fold {
			test = append(test, e)
		} else {
			train = append(train, e)
		}
	}
	return train, test
}

// score vectorizes set once with p's vocabulary and measures the batch
// accuracy of p's classifier on it.
func score(p *models.Pipeline, set data.TrainingSet) (float64, error) {
	X, err := p.Vectorizer.Transform(set.Texts())
	if err != nil {
		return 0, err
	}
	return accuracy(p.Classifier, X, set.Labels()), nil
}

func accuracy(m models.Model, X [][]float64, labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}
	c := 0
	for i, got := range m.Predict(X) {
		if got == labels[i] {
			c++
		}
	}
	return float64(c) / float64(len(labels))
}

func writeCSV(path string, curve []curvePoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"size", "train_acc", "test_acc"}); err != nil {
		return err
	}
	for _, p := range curve {
		rec := []string{strconv.Itoa(p.Size), fmt.Sprintf("%.6f", p.TrainAcc), fmt.Sprintf("%.6f", p.TestAcc)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func plotCurve(path string, curve []curvePoint) error {
	p := plot.New()
	p.Title.Text = "Learning curve"
	p.X.Label.Text = "Training examples"
	p.Y.Label.Text = "Accuracy"
	p.Y.Min = 0
	p.Y.Max = 1

	trPts := make(plotter.XYs, len(curve))
	tePts := make(plotter.XYs, len(curve))
	for i, c := range curve {
		trPts[i].X, trPts[i].Y = float64(c.Size), c.TrainAcc
		tePts[i].X, tePts[i].Y = float64(c.Size), c.TestAcc
	}
	if err := plotutil.AddLinePoints(p, "Train", trPts, "Held-out", tePts); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
