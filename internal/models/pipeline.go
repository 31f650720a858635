package models

import (
	"fmt"
	"time"

	"catclassifier/internal/features"
)

// Pipeline chains the TF-IDF vectorizer and the Naive Bayes classifier.
// It is the unit that gets trained, persisted and served.
type Pipeline struct {
	Vectorizer *features.TfidfVectorizer
	Classifier *MultinomialNB
	Version    string
	TrainedAt  time.Time
	Examples   int
}

// Result is one classified text. Probabilities has an entry for every class.
type Result struct {
	Category      string
	Confidence    float64
	Probabilities map[string]float64
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		Vectorizer: features.NewTfidfVectorizer(),
		Classifier: NewMultinomialNB(),
	}
}

func (p *Pipeline) Name() string { return "TfidfVectorizer+" + p.Classifier.Name() }

func (p *Pipeline) Classes() []string { return p.Classifier.Classes() }

func (p *Pipeline) Fit(texts, labels []string) error {
	X, err := p.Vectorizer.FitTransform(texts)
	if err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}
	if err := p.Classifier.Fit(X, labels); err != nil {
		return fmt.Errorf("fit classifier: %w", err)
	}
	p.TrainedAt = time.Now().UTC()
	p.Examples = len(texts)
	return nil
}

// Classify runs text through the pipeline. Category is the arg-max class
// and Confidence its probability.
func (p *Pipeline) Classify(text string) (Result, error) {
	if p.Vectorizer == nil || p.Classifier == nil {
		return Result{}, fmt.Errorf("pipeline is incomplete")
	}
	X, err := p.Vectorizer.Transform([]string{text})
	if err != nil {
		return Result{}, err
	}
	if err := p.Classifier.Check(p.Vectorizer.NumFeatures()); err != nil {
		return Result{}, err
	}
	proba := p.Classifier.PredictProba(X)[0]
	classes := p.Classifier.Classes()
	best := argmax(proba)
	probs := make(map[string]float64, len(classes))
	for i, c := range classes {
		probs[c] = proba[i]
	}
	return Result{Category: classes[best], Confidence: proba[best], Probabilities: probs}, nil
}

func (p *Pipeline) Predict(text string) (string, error) {
	r, err := p.Classify(text)
	return r.Category, err
}

func (p *Pipeline) PredictProba(text string) (map[string]float64, error) {
	r, err := p.Classify(text)
	return r.Probabilities, err
}
