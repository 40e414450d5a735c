// internal/services/analysis/claude.go
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"formflow/internal/common/config"
	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/httpclient"
	"formflow/internal/models"
)

const anthropicVersion = "2023-06-01"

const classificationPrompt = `Analyze this user text and return a JSON response with the detected intent and entities for form generation.

User text: %q

Please analyze the text and return ONLY a JSON object in this exact format:
{
  "intent": "one of: BookFlight, HotelReservation, ContactUs, Registration, Feedback, Appointment, or Generic",
  "confidence": 0.85,
  "entities": [
    {
      "type": "entity_type",
      "value": "extracted_value",
      "confidence": 0.90
    }
  ],
  "reasoning": "brief explanation of why this intent was chosen"
}

Supported intents:
- BookFlight: Flight booking requests
- HotelReservation: Hotel/accommodation booking
- ContactUs: Contact forms, questions, support requests
- Registration: Sign up, account creation, newsletter subscription
- Feedback: Reviews, ratings, complaints, suggestions
- Appointment: Scheduling meetings, appointments, bookings
- Generic: Anything else

Entity types to extract:
- departure: departure city/location
- destination: destination city/location
- city: general city/location
- date: dates, times, durations
- person: person names
- email: email addresses
- phone: phone numbers
- company: company/organization names
- product: product/service names
- number: quantities, counts

Return only the JSON object, no other text.`

// ClaudeClient calls the Anthropic messages API to classify text. The
// API is expected to return a single bare JSON object; anything else is
// reported as a malformed-response error.
type ClaudeClient struct {
	cfg    config.ClassifierConfig
	client *httpclient.Client
}

func NewClaudeClient(cfg config.ClassifierConfig) *ClaudeClient {
	return &ClaudeClient{
		cfg:    cfg,
		client: httpclient.NewClient(time.Duration(cfg.TimeoutMs) * time.Millisecond),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// classificationDocument is the intermediate parse target for the JSON
// object the model returns. Intent is a pointer so a missing field is
// distinguishable from an empty one.
type classificationDocument struct {
	Intent     *string  `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Entities   []struct {
		Type       string  `json:"type"`
		Value      string  `json:"value"`
		Confidence float64 `json:"confidence"`
	} `json:"entities"`
	Reasoning *string `json:"reasoning"`
}

func (c *ClaudeClient) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []message{
			{Role: "user", Content: fmt.Sprintf(classificationPrompt, text)},
		},
	})
	if err != nil {
		return models.ClassificationResult{}, stderrors.NewClassificationFailedError(fmt.Errorf("marshal request: %w", err))
	}

	resp, err := c.client.PostJSON(ctx, c.cfg.APIURL, body, map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return models.ClassificationResult{}, stderrors.NewClassifierAPITimeoutError()
		}
		return models.ClassificationResult{}, stderrors.NewClassificationFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ClassificationResult{}, stderrors.NewClassificationFailedError(
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ClassificationResult{}, stderrors.NewClassificationFailedError(fmt.Errorf("read response: %w", err))
	}

	var envelope messagesResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.ClassificationResult{}, stderrors.NewClassifierResponseMalformedError("invalid response envelope")
	}
	if len(envelope.Content) == 0 {
		return models.ClassificationResult{}, stderrors.NewClassifierResponseMalformedError("empty response content")
	}

	return parseClassification(envelope.Content[0].Text)
}

// parseClassification decodes the model's JSON payload. A document that
// is not valid JSON or lacks the intent field is a malformed response.
func parseClassification(payload string) (models.ClassificationResult, error) {
	var doc classificationDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.ClassificationResult{}, stderrors.NewClassifierResponseMalformedError("payload is not valid JSON")
	}
	if doc.Intent == nil || *doc.Intent == "" {
		return models.ClassificationResult{}, stderrors.NewClassifierResponseMalformedError("missing intent field")
	}

	result := models.ClassificationResult{
		Intent: models.ParseIntent(*doc.Intent),
	}
	if doc.Confidence != nil {
		result.Confidence = *doc.Confidence
	}
	if doc.Reasoning != nil {
		result.Rationale = *doc.Reasoning
	}
	for _, e := range doc.Entities {
		result.Entities = append(result.Entities, models.Entity{
			Type:       e.Type,
			Value:      e.Value,
			Confidence: e.Confidence,
		})
	}

	return result, nil
}
