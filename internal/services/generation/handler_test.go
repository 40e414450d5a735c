// internal/services/generation/handler_test.go
package generation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow/internal/common/logger"
	"formflow/internal/models"
	"formflow/internal/services/analysis"
)

var testClock = func() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func newGenerationRouter(t *testing.T, store FormStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	extractor := analysis.NewEntityExtractorAt(testClock)
	classifier := analysis.NewClassifier(nil, analysis.NewRuleClassifier(extractor), true, log)
	handler := NewHandler(NewService(classifier, store, log), log)

	router := gin.New()
	handler.Register(router.Group("/api/form"))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Generate_FlightScenario(t *testing.T) {
	router := newGenerationRouter(t, NewMemoryFormStore())

	w := postJSON(router, "/api/form/generate",
		`{"text": "I want to book a flight to Paris tomorrow", "userId": "user-1"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var form models.GeneratedForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))

	assert.Equal(t, models.IntentBookFlight, form.Intent)
	assert.Equal(t, "Flight Booking", form.Title)
	assert.NotEmpty(t, form.FormID)
	assert.Equal(t, "paris", form.FindField("destination").Value)
	assert.Equal(t, "2024-03-16", form.FindField("departureDate").Value)
}

func TestHandler_Generate_GibberishYieldsGenericForm(t *testing.T) {
	router := newGenerationRouter(t, NewMemoryFormStore())

	w := postJSON(router, "/api/form/generate", `{"text": "asdkjaslkdj"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var form models.GeneratedForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, models.IntentGeneric, form.Intent)
	assert.Len(t, form.Fields, 4)
}

func TestHandler_Generate_MissingTextIs400(t *testing.T) {
	router := newGenerationRouter(t, NewMemoryFormStore())

	for _, body := range []string{`{}`, `{"text": ""}`, `{"text": "   "}`} {
		w := postJSON(router, "/api/form/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestHandler_Generate_ThenFetchRoundTrip(t *testing.T) {
	store := NewMemoryFormStore()
	router := newGenerationRouter(t, store)

	w := postJSON(router, "/api/form/generate", `{"text": "I need a hotel room in Rome", "userId": "u9"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.GeneratedForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/form/"+created.FormID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.GeneratedForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.FormID, fetched.FormID)
	assert.Equal(t, created.Fields, fetched.Fields)
}

func TestHandler_Get_UnknownFormIs404(t *testing.T) {
	router := newGenerationRouter(t, NewMemoryFormStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/form/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_DeleteAndListByUser(t *testing.T) {
	router := newGenerationRouter(t, NewMemoryFormStore())

	var formIDs []string
	for i := 0; i < 2; i++ {
		w := postJSON(router, "/api/form/generate",
			fmt.Sprintf(`{"text": "feedback number %d", "userId": "erin"}`, i))
		require.Equal(t, http.StatusOK, w.Code)

		var form models.GeneratedForm
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
		formIDs = append(formIDs, form.FormID)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/form/user/erin", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Forms []models.GeneratedForm `json:"forms"`
		Count int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 2, listing.Count)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/form/"+formIDs[0], nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/form/"+formIDs[0], nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
