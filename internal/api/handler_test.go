package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"catclassifier/internal/api/mocks"
	"catclassifier/internal/predictor"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, p Predictor, apiKey string) *gin.Engine {
	t.Helper()
	return Setup(p, RouterConfig{APIKey: apiKey, CORSOrigins: []string{"http://localhost:5173"}}, zap.NewNop())
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Root(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("ready when a model is loaded", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Loaded().Return(true)

		w := doJSON(newTestRouter(t, p, ""), http.MethodGet, "/", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body RootResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, RootResponse{Message: "Project Category Classifier API", Status: "ready", Version: "1.0.0"}, body)
	})

	t.Run("reports a missing model", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Loaded().Return(false)

		w := doJSON(newTestRouter(t, p, ""), http.MethodGet, "/", "", nil)

		assert.Contains(t, w.Body.String(), `"status":"model not loaded"`)
	})
}

func TestHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	p.EXPECT().Loaded().Return(false)

	w := doJSON(newTestRouter(t, p, "secret"), http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","model_loaded":false}`, w.Body.String())
}

func TestHandler_Versions(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	p.EXPECT().Versions().Return(nil)
	p.EXPECT().DefaultVersion().Return("v1")

	w := doJSON(newTestRouter(t, p, ""), http.MethodGet, "/versions", "", nil)

	assert.JSONEq(t, `{"versions":[],"default":"v1"}`, w.Body.String())
}

func TestHandler_Predict(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("returns the prediction", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Predict(gomock.Any(), "Build new API endpoint", "v2").Return(predictor.Prediction{
			Category:         "Development",
			Confidence:       0.6,
			AllProbabilities: map[string]float64{"Development": 0.6, "Design": 0.4},
			Version:          "v2",
		}, nil)

		w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/predict?version=v2", `{"text":"Build new API endpoint"}`, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"category":"Development","confidence":0.6,"all_probabilities":{"Development":0.6,"Design":0.4},"version":"v2"}`, w.Body.String())
	})

	t.Run("passes an empty version through to the service", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Predict(gomock.Any(), "hello", "").Return(predictor.Prediction{Version: "v1"}, nil)

		w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/predict", `{"text":"hello"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a body without text", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)

		w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/predict", `{"input":"hello"}`, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})

	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"invalid version", &predictor.InvalidVersionError{Version: "v9", Valid: []string{"v1"}}, http.StatusBadRequest, "Invalid model version: v9. Valid versions are: v1"},
		{"not loaded", predictor.ErrModelNotLoaded, http.StatusServiceUnavailable, "Model not loaded. Run the trainer first."},
		{"prediction failure", predictor.ErrPrediction, http.StatusInternalServerError, "prediction error"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mocks.NewMockPredictor(ctrl)
			p.EXPECT().Predict(gomock.Any(), "hello", "v9").Return(predictor.Prediction{}, tc.err)

			w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/predict?version=v9", `{"text":"hello"}`, nil)

			require.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.detail, body.Detail)
		})
	}
}

func TestHandler_PredictRequiresAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	router := newTestRouter(t, p, "secret")

	w := doJSON(router, http.MethodPost, "/predict", `{"text":"hello"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/predict", `{"text":"hello"}`, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	p.EXPECT().Predict(gomock.Any(), "hello", "").Return(predictor.Prediction{Version: "v1"}, nil)
	w = doJSON(router, http.MethodPost, "/predict", `{"text":"hello"}`, map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Reload(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("returns the new version list", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Reload(gomock.Any()).Return(nil)
		p.EXPECT().Versions().Return([]string{"v1", "v2"})
		p.EXPECT().DefaultVersion().Return("v1")

		w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/admin/reload", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"versions":["v1","v2"],"default":"v1"}`, w.Body.String())
	})

	t.Run("surfaces load failures", func(t *testing.T) {
		p := mocks.NewMockPredictor(ctrl)
		p.EXPECT().Reload(gomock.Any()).Return(errors.Join(predictor.ErrModelLoad, errors.New("version v2: bad gob")))

		w := doJSON(newTestRouter(t, p, ""), http.MethodPost, "/admin/reload", "", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "bad gob")
	})
}
