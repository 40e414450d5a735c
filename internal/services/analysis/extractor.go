// internal/services/analysis/extractor.go
package analysis

import (
	"regexp"
	"strings"
	"time"

	"formflow/internal/models"
)

const (
	cityConfidence   = 0.90
	dateConfidence   = 0.85
	numberConfidence = 0.80
	emailConfidence  = 0.95
	phoneConfidence  = 0.85
)

// Recognized city names, matched as lowercase substrings.
var cities = []string{
	"new york", "paris", "london", "tokyo", "dubai", "singapore",
	"sydney", "berlin", "madrid", "rome", "los angeles", "chicago",
}

var (
	numberPattern = regexp.MustCompile(`\b\d+\b`)
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+\d[\d\s().-]{7,}\d`)
)

// EntityExtractor pulls typed entities out of raw text using keyword
// and pattern matching. It is deterministic and never fails; text with
// no recognizable content yields an empty slice.
type EntityExtractor struct {
	now func() time.Time
}

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{now: time.Now}
}

// NewEntityExtractorAt uses a fixed clock for relative date resolution.
func NewEntityExtractorAt(now func() time.Time) *EntityExtractor {
	return &EntityExtractor{now: now}
}

// Extract returns entities in a fixed order: city matches first (as both
// destination and city), then date, number, email and phone. Only the
// first match of each kind in the text is reported. Phone numbers are
// recognized in international form (leading +) so plain counts like
// "2 people" stay number entities.
func (e *EntityExtractor) Extract(text string) []models.Entity {
	lower := strings.ToLower(text)
	var entities []models.Entity

	for _, city := range cities {
		if strings.Contains(lower, city) {
			entities = append(entities,
				models.Entity{Type: "destination", Value: city, Confidence: cityConfidence},
				models.Entity{Type: "city", Value: city, Confidence: cityConfidence},
			)
			break
		}
	}

	today := e.now().UTC().Truncate(24 * time.Hour)
	var date time.Time
	switch {
	case strings.Contains(lower, "today"):
		date = today
	case strings.Contains(lower, "tomorrow"):
		date = today.AddDate(0, 0, 1)
	case strings.Contains(lower, "next week"):
		date = today.AddDate(0, 0, 7)
	}
	if !date.IsZero() {
		entities = append(entities, models.Entity{
			Type:       "date",
			Value:      date.Format("2006-01-02"),
			Confidence: dateConfidence,
		})
	}

	if match := numberPattern.FindString(text); match != "" {
		entities = append(entities, models.Entity{
			Type:       "number",
			Value:      match,
			Confidence: numberConfidence,
		})
	}

	if match := emailPattern.FindString(text); match != "" {
		entities = append(entities, models.Entity{
			Type:       "email",
			Value:      match,
			Confidence: emailConfidence,
		})
	}

	if match := phonePattern.FindString(text); match != "" {
		entities = append(entities, models.Entity{
			Type:       "phone",
			Value:      match,
			Confidence: phoneConfidence,
		})
	}

	return entities
}
