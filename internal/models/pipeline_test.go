package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catclassifier/internal/data"
)

func trainSample(t *testing.T) *Pipeline {
	t.Helper()
	p := NewPipeline()
	require.NoError(t, p.Fit(data.SampleSet.Texts(), data.SampleSet.Labels()))
	return p
}

func TestPipeline_EndToEnd(t *testing.T) {
	p := trainSample(t)

	r, err := p.Classify("Build new API endpoint")

	require.NoError(t, err)
	assert.Equal(t, "Development", r.Category)
	assert.Greater(t, r.Confidence, 0.2)
}

func TestPipeline_ProbabilityInvariants(t *testing.T) {
	p := trainSample(t)
	inputs := []string{
		"Add new feature to dashboard",
		"Create marketing campaign",
		"Design new icon set",
		"Research best practices",
		"",
		"zzz qqq completely unknown",
	}

	for _, text := range inputs {
		r, err := p.Classify(text)
		require.NoError(t, err, text)

		assert.Len(t, r.Probabilities, len(p.Classes()))
		var sum, top float64
		for _, v := range r.Probabilities {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			sum += v
			if v > top {
				top = v
			}
		}
		assert.InDelta(t, 1.0, sum, 1e-6, text)
		assert.Equal(t, top, r.Confidence, text)
		assert.Contains(t, r.Probabilities, r.Category)
		assert.Equal(t, top, r.Probabilities[r.Category])
	}
}

func TestPipeline_UnknownLabelBecomesClass(t *testing.T) {
	set := append(data.TrainingSet{}, data.SampleSet...)
	set = append(set,
		data.TrainingExample{Text: "Finance", Category: "Finance"},
		data.TrainingExample{Text: "Pay vendor invoices", Category: "Finance"},
		data.TrainingExample{Text: "Reconcile vendor invoices", Category: "Finance"},
		data.TrainingExample{Text: "Approve quarterly budget", Category: "Finance"},
		data.TrainingExample{Text: "Prepare budget forecast", Category: "Finance"},
		data.TrainingExample{Text: "Process vendor payments", Category: "Finance"},
		data.TrainingExample{Text: "Review invoices and expenses", Category: "Finance"},
	)
	p := NewPipeline()

	require.NoError(t, p.Fit(set.Texts(), set.Labels()))

	assert.Contains(t, p.Classes(), "Finance")
	category, err := p.Predict("Pay vendor invoices")
	require.NoError(t, err)
	assert.Equal(t, "Finance", category)
}

func TestPipeline_IncompatibleState(t *testing.T) {
	p := trainSample(t)
	p.Classifier.FeatureLogProb = p.Classifier.FeatureLogProb[:1]

	_, err := p.Classify("Build new API endpoint")

	assert.Error(t, err)
}
