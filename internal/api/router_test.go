package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catclassifier/internal/data"
	"catclassifier/internal/models"
	"catclassifier/internal/predictor"
	"catclassifier/internal/registry"
)

func TestRouter_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New(dir, zap.NewNop())
	svc := predictor.NewService(reg, "v1", zap.NewNop())
	router := newTestRouter(t, svc, "")

	w := doJSON(router, http.MethodGet, "/health", "", nil)
	assert.JSONEq(t, `{"status":"ok","model_loaded":false}`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/predict", `{"text":"Build new API endpoint"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	p := models.NewPipeline()
	require.NoError(t, p.Fit(data.SampleSet.Texts(), data.SampleSet.Labels()))
	p.Version = "v1"
	require.NoError(t, models.Save(filepath.Join(dir, models.FileName("v1")), p))

	w = doJSON(router, http.MethodPost, "/admin/reload", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/health", "", nil)
	assert.JSONEq(t, `{"status":"ok","model_loaded":true}`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/predict", `{"text":"Build new API endpoint"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out predictor.Prediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Development", out.Category)
	assert.Greater(t, out.Confidence, 0.2)
	assert.Equal(t, "v1", out.Version)
	assert.Len(t, out.AllProbabilities, 5)

	w = doJSON(router, http.MethodPost, "/predict?version=v7", `{"text":"Build new API endpoint"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Valid versions are: v1")

	w = doJSON(router, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, w.Body.String(), "catclassifier_predictions_total")
}
