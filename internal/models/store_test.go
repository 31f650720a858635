package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "category_classifier.gob", FileName(""))
	assert.Equal(t, "category_classifier_v2.gob", FileName("v2"))
}

func TestVersionFromFile(t *testing.T) {
	cases := map[string]struct {
		version string
		ok      bool
	}{
		"models/category_classifier_v1.gob":   {"v1", true},
		"category_classifier_2024.10-rc1.gob": {"2024.10-rc1", true},
		"category_classifier.gob":             {"", false},
		"category_classifier_v1.pkl":          {"", false},
		"category_classifier_bad_token.gob":   {"", false},
		"other_v1.gob":                        {"", false},
	}
	for name, tc := range cases {
		v, ok := VersionFromFile(name)
		assert.Equal(t, tc.ok, ok, name)
		assert.Equal(t, tc.version, v, name)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	p := trainSample(t)
	p.Version = "v1"
	path := filepath.Join(dir, "nested", FileName("v1"))

	require.NoError(t, Save(path, p))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "v1", loaded.Version)
	assert.Equal(t, p.Classes(), loaded.Classes())
	want, err := p.Classify("Design new logo")
	require.NoError(t, err)
	got, err := loaded.Classify("Design new logo")
	require.NoError(t, err)
	assert.Equal(t, want.Category, got.Category)
	assert.InDelta(t, want.Confidence, got.Confidence, 1e-12)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, FileName("v9")))
	assert.ErrorIs(t, err, ErrModelNotFound)

	garbage := filepath.Join(dir, FileName("v1"))
	require.NoError(t, os.WriteFile(garbage, []byte("not a gob"), 0o644))
	_, err = Load(garbage)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelNotFound)
}
