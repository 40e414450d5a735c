// internal/models/analysis.go
package models

import (
	"strings"
	"time"
)

// Intent is the closed set of user goals a text can resolve to. Every
// classification path terminates in one of these values; free text that
// matches nothing resolves to IntentGeneric, never an error.
type Intent string

const (
	IntentBookFlight       Intent = "BookFlight"
	IntentHotelReservation Intent = "HotelReservation"
	IntentContactUs        Intent = "ContactUs"
	IntentRegistration     Intent = "Registration"
	IntentFeedback         Intent = "Feedback"
	IntentAppointment      Intent = "Appointment"
	IntentGeneric          Intent = "Generic"
)

// AllIntents lists the canonical intents in fixed order.
var AllIntents = []Intent{
	IntentBookFlight,
	IntentHotelReservation,
	IntentContactUs,
	IntentRegistration,
	IntentFeedback,
	IntentAppointment,
	IntentGeneric,
}

// ParseIntent resolves a raw label to a canonical intent, case-insensitively.
// Unrecognized labels resolve to IntentGeneric.
func ParseIntent(raw string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, intent := range AllIntents {
		if strings.ToLower(string(intent)) == normalized {
			return intent
		}
	}
	return IntentGeneric
}

// Entity is a typed span of information extracted from free text.
// Observed types: departure, destination, city, date, number, person,
// email, phone, company, product.
type Entity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult is the outcome of classifying one text input.
// It is immutable after creation and never persisted.
type ClassificationResult struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities"`
	Rationale  string   `json:"reasoning"`
}

// FirstEntity returns the value of the first entity with the given type,
// or def when no such entity exists. First match wins even when a later
// entity of the same type carries a higher confidence.
func FirstEntity(entities []Entity, entityType, def string) string {
	for _, e := range entities {
		if e.Type == entityType {
			return e.Value
		}
	}
	return def
}

// AnalysisRequest is the payload of POST /api/analysis/analyze.
type AnalysisRequest struct {
	Text     string `json:"text"`
	UserID   string `json:"userId,omitempty"`
	Language string `json:"language,omitempty"`
}

// AnalysisResponse mirrors ClassificationResult for the standalone
// analysis endpoint.
type AnalysisResponse struct {
	Intent      Intent    `json:"intent"`
	Confidence  float64   `json:"confidence"`
	Entities    []Entity  `json:"entities"`
	Language    string    `json:"language"`
	ProcessedAt time.Time `json:"processedAt"`
}
