// internal/models/form.go
package models

import "time"

// FieldType enumerates the renderable input types of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
)

// FormField is one field of a generated form. Name is unique within the
// form. Options is only meaningful for select/radio fields and must be
// non-empty for those types; for checkbox fields Value is "true" or "false".
type FormField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Value       string    `json:"value,omitempty"`
}

// GeneratedForm is a complete form definition produced for one text input.
// Field order is significant and drives rendering. The form is immutable
// once saved to a store.
type GeneratedForm struct {
	FormID           string      `json:"formId"`
	Title            string      `json:"title"`
	Intent           Intent      `json:"intent"`
	Fields           []FormField `json:"fields"`
	SubmitURL        string      `json:"submitUrl"`
	SubmitButtonText string      `json:"submitButtonText"`
	CreatedAt        time.Time   `json:"createdAt"`
	UserID           string      `json:"userId,omitempty"`
}

// FindField returns the field with the given name, or nil.
func (f *GeneratedForm) FindField(name string) *FormField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// FormGenerationRequest is the payload of POST /api/form/generate.
type FormGenerationRequest struct {
	Text   string `json:"text"`
	UserID string `json:"userId,omitempty"`
}

// ErrorResponse is the structured error body for 4xx/5xx responses.
// Details carries a user-correctable hint, never raw internals.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
