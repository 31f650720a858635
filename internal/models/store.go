package models

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	FilePrefix = "category_classifier"
	FileExt    = ".gob"
)

var (
	ErrModelNotFound  = errors.New("model file not found")
	ErrInvalidVersion = errors.New("invalid version token")
	versionPattern    = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
)

// FileName returns category_classifier.gob for an empty version and
// category_classifier_{version}.gob otherwise.
func FileName(version string) string {
	if version == "" {
		return FilePrefix + FileExt
	}
	return FilePrefix + "_" + version + FileExt
}

// VersionGlob matches every versioned model file inside dir.
func VersionGlob(dir string) string {
	return filepath.Join(dir, FilePrefix+"_*"+FileExt)
}

// VersionFromFile extracts the version token from a versioned file name.
func VersionFromFile(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, FilePrefix+"_") || !strings.HasSuffix(base, FileExt) {
		return "", false
	}
	v := strings.TrimSuffix(strings.TrimPrefix(base, FilePrefix+"_"), FileExt)
	if !ValidVersion(v) {
		return "", false
	}
	return v, true
}

func ValidVersion(v string) bool { return versionPattern.MatchString(v) }

func Save(path string, p *Pipeline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode model: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", filepath.Base(path), err)
	}
	if p.Vectorizer == nil || p.Classifier == nil || len(p.Classifier.Classes()) == 0 {
		return nil, fmt.Errorf("decode model %s: pipeline is incomplete", filepath.Base(path))
	}
	return &p, nil
}
