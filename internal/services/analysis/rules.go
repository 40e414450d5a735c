// internal/services/analysis/rules.go
package analysis

import (
	"strings"

	"formflow/internal/models"
)

// fallbackConfidence marks a rule-based result as heuristic rather
// than learned.
const fallbackConfidence = 0.70

const fallbackRationale = "Fallback keyword-based detection"

// intentRule matches when any keyword is present, or when every member
// of an allOf group is present.
type intentRule struct {
	intent   models.Intent
	keywords []string
	allOf    [][]string
}

// Rule order is significant: the first matching rule wins, so flight
// keywords are tested before hotel keywords, and so on down the list.
var intentRules = []intentRule{
	{
		intent:   models.IntentBookFlight,
		keywords: []string{"flight", "fly"},
		allOf:    [][]string{{"book", "ticket"}, {"book", "plane"}},
	},
	{
		intent:   models.IntentHotelReservation,
		keywords: []string{"hotel", "room", "accommodation", "reservation"},
	},
	{
		intent:   models.IntentContactUs,
		keywords: []string{"contact", "question", "help", "support"},
	},
	{
		intent:   models.IntentRegistration,
		keywords: []string{"register", "signup", "sign up", "account"},
	},
	{
		intent:   models.IntentFeedback,
		keywords: []string{"feedback", "review", "rating", "complain"},
	},
	{
		intent:   models.IntentAppointment,
		keywords: []string{"appointment", "schedule", "meeting", "booking"},
	},
}

// RuleClassifier is the deterministic keyword-ladder intent detector.
// It never fails; text matching no rule resolves to Generic.
type RuleClassifier struct {
	extractor *EntityExtractor
}

func NewRuleClassifier(extractor *EntityExtractor) *RuleClassifier {
	return &RuleClassifier{extractor: extractor}
}

func (r *RuleClassifier) Classify(text string) models.ClassificationResult {
	lower := strings.ToLower(text)

	intent := models.IntentGeneric
	for _, rule := range intentRules {
		if rule.matches(lower) {
			intent = rule.intent
			break
		}
	}

	return models.ClassificationResult{
		Intent:     intent,
		Confidence: fallbackConfidence,
		Entities:   r.extractor.Extract(text),
		Rationale:  fallbackRationale,
	}
}

func (r intentRule) matches(lower string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, group := range r.allOf {
		all := true
		for _, kw := range group {
			if !strings.Contains(lower, kw) {
				all = false
				break
			}
		}
		if all && len(group) > 0 {
			return true
		}
	}
	return false
}
