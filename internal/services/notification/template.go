// internal/services/notification/template.go
package notification

import (
	"fmt"
	"sort"
	"strings"

	"formflow/internal/models"
)

var intentSubjects = map[models.Intent]string{
	models.IntentBookFlight:       "New flight booking request",
	models.IntentHotelReservation: "New hotel reservation request",
	models.IntentContactUs:        "New contact message",
	models.IntentRegistration:     "New registration",
	models.IntentFeedback:         "New feedback received",
	models.IntentAppointment:      "New appointment request",
	models.IntentGeneric:          "New form submission",
}

// RenderTemplate substitutes {{key}} placeholders with param values.
// Unknown placeholders are left as-is.
func RenderTemplate(template string, params map[string]string) string {
	result := template
	for key, value := range params {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// submissionSubject picks a subject line for a submission notification.
func submissionSubject(intent models.Intent) string {
	if subject, ok := intentSubjects[intent]; ok {
		return subject
	}
	return intentSubjects[models.IntentGeneric]
}

// submissionBody renders the submitted field values as a plain text
// summary, fields sorted by name for stable output.
func submissionBody(req *models.NotificationRequest) string {
	var builder strings.Builder

	builder.WriteString(RenderTemplate("Submission {{submissionId}} ({{intent}})\n\n", map[string]string{
		"submissionId": req.SubmissionID,
		"intent":       string(req.Intent),
	}))

	names := make([]string, 0, len(req.FieldValues))
	for name := range req.FieldValues {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		builder.WriteString(fmt.Sprintf("%s: %s\n", name, req.FieldValues[name]))
	}

	return builder.String()
}
