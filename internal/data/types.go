package data

import "errors"

// Categories is the fixed menu offered when adding examples by hand.
// The trainer itself accepts any label found in the CSV.
var Categories = []string{"Development", "Marketing", "Design", "Research", "Operations"}

const (
	ColumnText     = "text"
	ColumnCategory = "category"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyDataset  = errors.New("no usable training rows")
)

type TrainingExample struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// TrainingSet keeps the file order of the examples.
type TrainingSet []TrainingExample

func (s TrainingSet) Texts() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Text
	}
	return out
}

func (s TrainingSet) Labels() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Category
	}
	return out
}
