package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// MultinomialNB is a multinomial Naive Bayes classifier with additive
// (Laplace) smoothing. Classes are kept in lexicographic order.
type MultinomialNB struct {
	Alpha          float64
	ClassNames     []string
	ClassLogPrior  []float64
	FeatureLogProb [][]float64
}

func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1.0}
}

func (nb *MultinomialNB) Name() string { return "MultinomialNB" }

func (nb *MultinomialNB) Classes() []string { return nb.ClassNames }

func (nb *MultinomialNB) NumFeatures() int {
	if len(nb.FeatureLogProb) == 0 {
		return 0
	}
	return len(nb.FeatureLogProb[0])
}

func (nb *MultinomialNB) Fit(X [][]float64, y []string) error {
	if len(X) == 0 {
		return errors.New("cannot fit on an empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", len(X), len(y))
	}
	nFeats := len(X[0])

	index := map[string]int{}
	for _, label := range y {
		index[label] = 0
	}
	nb.ClassNames = make([]string, 0, len(index))
	for label := range index {
		nb.ClassNames = append(nb.ClassNames, label)
	}
	sort.Strings(nb.ClassNames)
	for i, label := range nb.ClassNames {
		index[label] = i
	}

	nClasses := len(nb.ClassNames)
	classCount := make([]float64, nClasses)
	featCount := make([][]float64, nClasses)
	for c := range featCount {
		featCount[c] = make([]float64, nFeats)
	}
	for i, row := range X {
		if len(row) != nFeats {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), nFeats)
		}
		c := index[y[i]]
		classCount[c]++
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("negative feature value at row %d", i)
			}
			featCount[c][j] += v
		}
	}

	alpha := nb.Alpha
	if alpha <= 0 {
		alpha = 1.0
		nb.Alpha = alpha
	}
	n := float64(len(X))
	nb.ClassLogPrior = make([]float64, nClasses)
	nb.FeatureLogProb = make([][]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		nb.ClassLogPrior[c] = math.Log(classCount[c] / n)
		total := alpha * float64(nFeats)
		for _, v := range featCount[c] {
			total += v
		}
		flp := make([]float64, nFeats)
		for j, v := range featCount[c] {
			flp[j] = math.Log((v + alpha) / total)
		}
		nb.FeatureLogProb[c] = flp
	}
	return nil
}

func (nb *MultinomialNB) Predict(X [][]float64) []string {
	out := make([]string, len(X))
	for i, p := range nb.PredictProba(X) {
		if p != nil {
			out[i] = nb.ClassNames[argmax(p)]
		}
	}
	return out
}

// PredictProba returns posterior class probabilities per row. Rows whose
// width does not match the fitted feature count come back nil; use
// Check to detect that up front.
func (nb *MultinomialNB) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, x := range X {
		if len(x) != nb.NumFeatures() || len(nb.ClassNames) == 0 {
			continue
		}
		jll := make([]float64, len(nb.ClassNames))
		for c := range nb.ClassNames {
			s := nb.ClassLogPrior[c]
			for j, v := range x {
				if v != 0 {
					s += v * nb.FeatureLogProb[c][j]
				}
			}
			jll[c] = s
		}
		out[i] = softmax(jll)
	}
	return out
}

// Check reports whether rows of width nFeats can be scored.
func (nb *MultinomialNB) Check(nFeats int) error {
	if len(nb.ClassNames) == 0 {
		return errors.New("classifier is not fitted")
	}
	if len(nb.ClassLogPrior) != len(nb.ClassNames) || len(nb.FeatureLogProb) != len(nb.ClassNames) {
		return errors.New("classifier state is inconsistent")
	}
	if nb.NumFeatures() != nFeats {
		return fmt.Errorf("classifier expects %d features, got %d", nb.NumFeatures(), nFeats)
	}
	return nil
}

func softmax(logits []float64) []float64 {
	m := math.Inf(-1)
	for _, v := range logits {
		if v > m {
			m = v
		}
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(v - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(p []float64) int {
	best := 0
	for i := range p {
		if p[i] > p[best] {
			best = i
		}
	}
	return best
}

var _ Model = (*MultinomialNB)(nil)
