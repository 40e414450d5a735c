// internal/services/analysis/handler_test.go
package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/logger"
	"formflow/internal/models"
)

func assertableClassificationError() error {
	return stderrors.NewClassifierResponseMalformedError("missing intent field")
}

func newAnalysisRouter(t *testing.T, backend Backend, fallbackOnError bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	classifier := NewClassifier(backend, newTestRuleClassifier(), fallbackOnError, log)
	handler := NewHandler(NewService(classifier, log), log)

	router := gin.New()
	handler.Register(router.Group("/api/analysis"))
	return router
}

func TestHandler_Analyze_RuleFallback(t *testing.T) {
	router := newAnalysisRouter(t, nil, true)

	body := `{"text": "I want to book a flight to Paris tomorrow", "userId": "user-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analysis/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.IntentBookFlight, resp.Intent)
	assert.Equal(t, "en", resp.Language)
	assert.False(t, resp.ProcessedAt.IsZero())
}

func TestHandler_Analyze_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{"userId": "user-1"}`},
		{"blank text", `{"text": "   "}`},
		{"invalid json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAnalysisRouter(t, nil, true)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/analysis/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Invalid request", resp["error"])
			assert.NotEmpty(t, resp["details"])
		})
	}
}

func TestHandler_Analyze_BackendFailureWithoutFallbackIs500(t *testing.T) {
	backend := &fakeBackend{err: assertableClassificationError()}
	router := newAnalysisRouter(t, backend, false)

	body := `{"text": "book a flight"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analysis/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Text analysis failed", resp["error"])
}

func TestHandler_Health(t *testing.T) {
	router := newAnalysisRouter(t, nil, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/analysis/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestHandler_Health_UnhealthyBackend(t *testing.T) {
	backend := &fakeBackend{err: assertableClassificationError()}
	router := newAnalysisRouter(t, backend, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/analysis/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
