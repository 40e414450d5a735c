// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow/internal/common/config"
	"formflow/internal/common/logger"
	"formflow/internal/models"
	"formflow/internal/server"
	"formflow/internal/services/analysis"
	"formflow/internal/services/generation"
	"formflow/internal/services/notification"
	"formflow/internal/services/submission"
)

// capturingSender records outbound emails instead of delivering them.
type capturingSender struct {
	mu   sync.Mutex
	sent []*models.EmailRequest
}

func (s *capturingSender) Send(ctx context.Context, req *models.EmailRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	return nil
}

func (s *capturingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *capturingSender) first() *models.EmailRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[0]
}

type testStack struct {
	router *gin.Engine
	email  *capturingSender
}

// newTestStack wires the whole pipeline with in-memory stores and the
// rule-based classifier, the same shape main assembles in production.
func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	email := &capturingSender{}

	cfg := &config.Config{}
	cfg.App.Name = "formflow"
	cfg.App.Version = "test"
	cfg.Notifications.Email.Enabled = true
	cfg.Notifications.Email.Provider = "smtp"
	cfg.Notifications.Email.From = "noreply@formflow.local"
	cfg.Notifications.DefaultRecipient = "ops@formflow.local"

	formStore := generation.NewMemoryFormStore()
	repository := submission.NewMemoryRepository()

	rules := analysis.NewRuleClassifier(analysis.NewEntityExtractor())
	classifier := analysis.NewClassifier(nil, rules, true, log)

	dispatcher := notification.NewDispatcher(cfg.Notifications, email, nil, log)
	bulk := notification.NewBulkMailer(email, 10, 0, log)

	handlers := server.Handlers{
		Analysis:     analysis.NewHandler(analysis.NewService(classifier, log), log),
		Generation:   generation.NewHandler(generation.NewService(classifier, formStore, log), log),
		Submission:   submission.NewHandler(submission.NewService(formStore, repository, dispatcher, log), log),
		Notification: notification.NewHandler(dispatcher, email, bulk, log),
	}

	return &testStack{
		router: server.NewRouter(cfg, handlers, log),
		email:  email,
	}
}

func (s *testStack) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestFullPipeline_FlightBooking(t *testing.T) {
	stack := newTestStack(t)

	// 1. Generate a form from free text.
	rec := stack.do(t, http.MethodPost, "/api/form/generate", models.FormGenerationRequest{
		Text:   "I want to book a flight to paris for 2 people",
		UserID: "user-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var form models.GeneratedForm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.Equal(t, models.IntentBookFlight, form.Intent)
	assert.NotEmpty(t, form.FormID)
	assert.Equal(t, "/api/form/submit", form.SubmitURL)

	fieldsByName := make(map[string]models.FormField, len(form.Fields))
	for _, field := range form.Fields {
		fieldsByName[field.Name] = field
	}
	assert.Equal(t, "paris", fieldsByName["destination"].Value)
	assert.Equal(t, "2", fieldsByName["passengers"].Value)

	// 2. The stored form is retrievable.
	rec = stack.do(t, http.MethodGet, "/api/form/"+form.FormID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// 3. An incomplete submission reports the missing required fields.
	rec = stack.do(t, http.MethodPost, "/api/form/submit", models.FormSubmissionRequest{
		FormID:      form.FormID,
		UserID:      "user-1",
		FieldValues: map[string]string{"destination": "paris"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var rejected models.FormSubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rejected))
	assert.False(t, rejected.Success)
	assert.NotEmpty(t, rejected.ValidationErrors)

	// 4. A complete submission succeeds and is persisted.
	rec = stack.do(t, http.MethodPost, "/api/form/submit", models.FormSubmissionRequest{
		FormID: form.FormID,
		UserID: "user-1",
		FieldValues: map[string]string{
			"departure":     "london",
			"destination":   "paris",
			"departureDate": "2026-09-01",
			"passengers":    "2",
			"class":         "Economy",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var accepted models.FormSubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.True(t, accepted.Success)
	require.NotEmpty(t, accepted.SubmissionID)

	// 5. The submission is queryable by id and by user.
	rec = stack.do(t, http.MethodGet, "/api/submission/"+accepted.SubmissionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.SubmissionRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, form.FormID, record.FormID)
	assert.Equal(t, models.IntentBookFlight, record.Intent)

	rec = stack.do(t, http.MethodGet, "/api/submission/user/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), accepted.SubmissionID)

	// 6. With no email in the submission, the notification goes to the
	// configured default recipient.
	require.Eventually(t, func() bool {
		return stack.email.count() > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ops@formflow.local", stack.email.first().To)
}

func TestAnalysisEndpoint(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/api/analysis/analyze", models.AnalysisRequest{
		Text: "I need a hotel room in tokyo tomorrow",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.IntentHotelReservation, resp.Intent)
	assert.Equal(t, "en", resp.Language)

	types := make(map[string]string)
	for _, entity := range resp.Entities {
		types[entity.Type] = entity.Value
	}
	assert.Equal(t, "tokyo", types["city"])
	expectedDate := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Equal(t, expectedDate, types["date"])
}

func TestUnknownFormReturnsNotFound(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/api/form/"+fmt.Sprintf("missing-%d", time.Now().UnixNano()), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirectNotificationEndpoint(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/api/notification/send", map[string]interface{}{
		"type":         "submission",
		"submissionId": "sub-e2e",
		"intent":       "ContactUs",
		"fieldValues":  map[string]string{"email": "visitor@example.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, stack.email.count())
	assert.Equal(t, "visitor@example.com", stack.email.first().To)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "formflow")

	rec = stack.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
