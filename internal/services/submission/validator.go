// internal/services/submission/validator.go
package submission

import (
	"strings"

	"formflow/internal/models"
)

// Validate checks a field-value map against the stored form schema.
// Every required field must have a non-blank value; violations are
// reported in field order as "<label> is required". An empty result
// means the submission is valid.
//
// Only required-field presence is checked; there is deliberately no
// type-level validation (email format, date parsing) at this layer.
func Validate(form *models.GeneratedForm, fieldValues map[string]string) []string {
	var violations []string

	for _, field := range form.Fields {
		if !field.Required {
			continue
		}
		if strings.TrimSpace(fieldValues[field.Name]) == "" {
			violations = append(violations, field.Label+" is required")
		}
	}

	return violations
}
