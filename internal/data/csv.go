package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// menuEntry is what the data-entry tool is allowed to write.
type menuEntry struct {
	Text     string `validate:"required"`
	Category string `validate:"required,oneof=Development Marketing Design Research Operations"`
}

// LoadTrainingSet reads a CSV with a header row. The text and category
// columns are located by name; other columns are ignored. Rows with an
// empty text or category are dropped.
func LoadTrainingSet(path string) (TrainingSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()
	return ReadTrainingSet(f)
}

func ReadTrainingSet(r io.Reader) (TrainingSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s, %s (file is empty)", ErrMissingColumn, ColumnText, ColumnCategory)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx, catIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnText:
			textIdx = i
		case ColumnCategory:
			catIdx = i
		}
	}
	missing := []string{}
	if textIdx < 0 {
		missing = append(missing, ColumnText)
	}
	if catIdx < 0 {
		missing = append(missing, ColumnCategory)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (found %s)", ErrMissingColumn,
			strings.Join(missing, ", "), strings.Join(header, ", "))
	}

	set := TrainingSet{}
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if textIdx >= len(row) || catIdx >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[textIdx])
		cat := strings.TrimSpace(row[catIdx])
		if text == "" || cat == "" {
			continue
		}
		set = append(set, TrainingExample{Text: text, Category: cat})
	}
	if len(set) == 0 {
		return nil, ErrEmptyDataset
	}
	return set, nil
}

// WriteTrainingSet overwrites path with a header and every example.
func WriteTrainingSet(path string, set TrainingSet) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{ColumnText, ColumnCategory}); err != nil {
		return err
	}
	for _, e := range set {
		if err := w.Write([]string{e.Text, e.Category}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// AppendExample validates e against the category menu and appends it as
// one row, creating the file with a header when it is missing or empty.
// Existing rows and columns are left untouched; the row is laid out to
// match the file's header. It returns the number of usable examples in
// the file afterwards.
func AppendExample(path string, e TrainingExample) (int, error) {
	e.Text = strings.TrimSpace(e.Text)
	if err := validate.Struct(menuEntry{Text: e.Text, Category: e.Category}); err != nil {
		return 0, fmt.Errorf("invalid example: %w", err)
	}

	header, newline, err := inspectCSV(path)
	if err != nil {
		return 0, err
	}
	row, err := alignRow(header, e)
	if err != nil {
		return 0, err
	}
	if err := appendRow(path, header, newline, row); err != nil {
		return 0, fmt.Errorf("append example: %w", err)
	}

	set, err := LoadTrainingSet(path)
	if err != nil {
		return 0, err
	}
	return len(set), nil
}

// inspectCSV returns the header of an existing CSV, or nil when the file
// is missing or holds no records. newline reports that the file does not
// end in a line break yet.
func inspectCSV(path string) (header []string, newline bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, err
	}
	if info.Size() == 0 {
		return nil, false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return nil, false, err
	}
	newline = last[0] != '\n'

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err = cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, newline, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read header: %w", err)
	}
	return header, newline, nil
}

func alignRow(header []string, e TrainingExample) ([]string, error) {
	if header == nil {
		return []string{e.Text, e.Category}, nil
	}
	row := make([]string, len(header))
	textIdx, catIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnText:
			textIdx = i
		case ColumnCategory:
			catIdx = i
		}
	}
	if textIdx < 0 || catIdx < 0 {
		return nil, fmt.Errorf("%w: %s, %s (found %s)", ErrMissingColumn,
			ColumnText, ColumnCategory, strings.Join(header, ", "))
	}
	row[textIdx] = e.Text
	row[catIdx] = e.Category
	return row, nil
}

func appendRow(path string, header []string, newline bool, row []string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if newline {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	w := csv.NewWriter(f)
	if header == nil {
		if err := w.Write([]string{ColumnText, ColumnCategory}); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

type CategoryCount struct {
	Category string
	Count    int
}

// CountByCategory returns per-label counts, most frequent first.
func CountByCategory(set TrainingSet) []CategoryCount {
	counts := lo.CountValuesBy(set, func(e TrainingExample) string { return e.Category })
	out := lo.MapToSlice(counts, func(k string, v int) CategoryCount {
		return CategoryCount{Category: k, Count: v}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
