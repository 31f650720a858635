package models

// Model is a multi-class classifier over dense feature vectors.
// PredictProba rows are aligned with Classes().
type Model interface {
	Fit(X [][]float64, y []string) error
	Predict(X [][]float64) []string
	PredictProba(X [][]float64) [][]float64
	Classes() []string
	Name() string
}
