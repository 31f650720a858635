package predictor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidVersion = errors.New("invalid model version")
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrModelLoad      = errors.New("model load error")
	ErrPrediction     = errors.New("prediction error")
	ErrEmptyText      = errors.New("text must not be empty")
)

// InvalidVersionError carries the versions that would have been accepted.
type InvalidVersionError struct {
	Version string
	Valid   []string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("Invalid model version: %s. Valid versions are: %s", e.Version, strings.Join(e.Valid, ", "))
}

func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
