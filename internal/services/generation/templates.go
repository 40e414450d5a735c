// internal/services/generation/templates.go
package generation

import (
	"time"

	"github.com/google/uuid"

	"formflow/internal/models"
)

const submitURL = "/api/form/submit"

// BuildForm expands an intent plus extracted entities into a concrete
// form definition. It is a pure mapping apart from the freshly generated
// form id and timestamp; it never fails, and an unknown intent falls
// through to the generic template.
func BuildForm(intent models.Intent, entities []models.Entity, originalText, userID string) *models.GeneratedForm {
	form := &models.GeneratedForm{
		FormID:    uuid.NewString(),
		Intent:    intent,
		SubmitURL: submitURL,
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
	}

	switch intent {
	case models.IntentBookFlight:
		buildFlightBookingForm(form, entities)
	case models.IntentHotelReservation:
		buildHotelReservationForm(form, entities)
	case models.IntentContactUs:
		buildContactForm(form, originalText)
	case models.IntentRegistration:
		buildRegistrationForm(form)
	case models.IntentFeedback:
		buildFeedbackForm(form, originalText)
	case models.IntentAppointment:
		buildAppointmentForm(form, entities, originalText)
	default:
		buildGenericForm(form, originalText)
	}

	return form
}

func buildFlightBookingForm(form *models.GeneratedForm, entities []models.Entity) {
	form.Title = "Flight Booking"
	form.SubmitButtonText = "Book Flight"

	form.Fields = []models.FormField{
		{
			Name:        "departure",
			Label:       "Departure City",
			Type:        models.FieldText,
			Required:    true,
			Value:       models.FirstEntity(entities, "departure", ""),
			Placeholder: "Enter departure city",
		},
		{
			Name:        "destination",
			Label:       "Destination City",
			Type:        models.FieldText,
			Required:    true,
			Value:       models.FirstEntity(entities, "destination", ""),
			Placeholder: "Enter destination city",
		},
		{
			Name:     "departureDate",
			Label:    "Departure Date",
			Type:     models.FieldDate,
			Required: true,
			Value:    models.FirstEntity(entities, "date", ""),
		},
		{
			Name:     "returnDate",
			Label:    "Return Date",
			Type:     models.FieldDate,
			Required: false,
		},
		{
			Name:        "passengers",
			Label:       "Number of Passengers",
			Type:        models.FieldNumber,
			Required:    true,
			Value:       models.FirstEntity(entities, "number", "1"),
			Placeholder: "1",
		},
		{
			Name:     "class",
			Label:    "Travel Class",
			Type:     models.FieldSelect,
			Required: true,
			Options:  []string{"Economy", "Business", "First Class"},
			Value:    "Economy",
		},
	}
}

func buildHotelReservationForm(form *models.GeneratedForm, entities []models.Entity) {
	form.Title = "Hotel Reservation"
	form.SubmitButtonText = "Reserve Room"

	form.Fields = []models.FormField{
		{
			Name:        "city",
			Label:       "City",
			Type:        models.FieldText,
			Required:    true,
			Value:       models.FirstEntity(entities, "city", ""),
			Placeholder: "Enter city",
		},
		{
			Name:     "checkIn",
			Label:    "Check-in Date",
			Type:     models.FieldDate,
			Required: true,
			Value:    models.FirstEntity(entities, "date", ""),
		},
		{
			Name:     "checkOut",
			Label:    "Check-out Date",
			Type:     models.FieldDate,
			Required: true,
		},
		{
			Name:     "guests",
			Label:    "Number of Guests",
			Type:     models.FieldNumber,
			Required: true,
			Value:    models.FirstEntity(entities, "number", "1"),
		},
		{
			Name:     "roomType",
			Label:    "Room Type",
			Type:     models.FieldSelect,
			Required: true,
			Options:  []string{"Standard", "Deluxe", "Suite"},
		},
	}
}

func buildContactForm(form *models.GeneratedForm, originalText string) {
	form.Title = "Contact Us"
	form.SubmitButtonText = "Send Message"

	form.Fields = []models.FormField{
		{
			Name:        "name",
			Label:       "Full Name",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Enter your full name",
		},
		{
			Name:        "email",
			Label:       "Email Address",
			Type:        models.FieldEmail,
			Required:    true,
			Placeholder: "Enter your email",
		},
		{
			Name:        "phone",
			Label:       "Phone Number",
			Type:        models.FieldTel,
			Required:    false,
			Placeholder: "Enter your phone number",
		},
		{
			Name:        "subject",
			Label:       "Subject",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "What can we help you with?",
		},
		{
			Name:        "message",
			Label:       "Message",
			Type:        models.FieldTextarea,
			Required:    true,
			Value:       originalText,
			Placeholder: "Please describe your inquiry",
		},
	}
}

func buildRegistrationForm(form *models.GeneratedForm) {
	form.Title = "Registration"
	form.SubmitButtonText = "Register"

	form.Fields = []models.FormField{
		{
			Name:        "firstName",
			Label:       "First Name",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Enter your first name",
		},
		{
			Name:        "lastName",
			Label:       "Last Name",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Enter your last name",
		},
		{
			Name:        "email",
			Label:       "Email Address",
			Type:        models.FieldEmail,
			Required:    true,
			Placeholder: "Enter your email",
		},
		{
			Name:        "phone",
			Label:       "Phone Number",
			Type:        models.FieldTel,
			Required:    true,
			Placeholder: "Enter your phone number",
		},
		{
			Name:     "newsletter",
			Label:    "Subscribe to Newsletter",
			Type:     models.FieldCheckbox,
			Required: false,
			Value:    "true",
		},
	}
}

func buildFeedbackForm(form *models.GeneratedForm, originalText string) {
	form.Title = "Feedback"
	form.SubmitButtonText = "Submit Feedback"

	form.Fields = []models.FormField{
		{
			Name:        "name",
			Label:       "Your Name",
			Type:        models.FieldText,
			Required:    false,
			Placeholder: "Enter your name (optional)",
		},
		{
			Name:        "email",
			Label:       "Email Address",
			Type:        models.FieldEmail,
			Required:    false,
			Placeholder: "Enter your email (optional)",
		},
		{
			Name:     "rating",
			Label:    "Overall Rating",
			Type:     models.FieldSelect,
			Required: true,
			Options:  []string{"5 - Excellent", "4 - Good", "3 - Average", "2 - Poor", "1 - Very Poor"},
		},
		{
			Name:     "category",
			Label:    "Feedback Category",
			Type:     models.FieldSelect,
			Required: true,
			Options:  []string{"Product Quality", "Customer Service", "Website Experience", "Delivery", "Other"},
		},
		{
			Name:        "feedback",
			Label:       "Your Feedback",
			Type:        models.FieldTextarea,
			Required:    true,
			Value:       originalText,
			Placeholder: "Please share your thoughts",
		},
	}
}

func buildAppointmentForm(form *models.GeneratedForm, entities []models.Entity, originalText string) {
	form.Title = "Schedule Appointment"
	form.SubmitButtonText = "Book Appointment"

	form.Fields = []models.FormField{
		{
			Name:        "name",
			Label:       "Full Name",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Enter your full name",
		},
		{
			Name:        "email",
			Label:       "Email Address",
			Type:        models.FieldEmail,
			Required:    true,
			Placeholder: "Enter your email",
		},
		{
			Name:        "phone",
			Label:       "Phone Number",
			Type:        models.FieldTel,
			Required:    true,
			Placeholder: "Enter your phone number",
		},
		{
			Name:     "appointmentDate",
			Label:    "Preferred Date",
			Type:     models.FieldDate,
			Required: true,
			Value:    models.FirstEntity(entities, "date", ""),
		},
		{
			Name:     "appointmentTime",
			Label:    "Preferred Time",
			Type:     models.FieldSelect,
			Required: true,
			Options:  []string{"9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"},
		},
		{
			Name:        "reason",
			Label:       "Reason for Appointment",
			Type:        models.FieldTextarea,
			Required:    true,
			Value:       originalText,
			Placeholder: "Please describe the purpose of your appointment",
		},
	}
}

func buildGenericForm(form *models.GeneratedForm, originalText string) {
	form.Title = "Information Request"
	form.SubmitButtonText = "Submit Request"

	form.Fields = []models.FormField{
		{
			Name:        "name",
			Label:       "Name",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Enter your name",
		},
		{
			Name:        "email",
			Label:       "Email",
			Type:        models.FieldEmail,
			Required:    true,
			Placeholder: "Enter your email",
		},
		{
			Name:        "subject",
			Label:       "Subject",
			Type:        models.FieldText,
			Required:    true,
			Placeholder: "Brief description of your request",
		},
		{
			Name:        "message",
			Label:       "Details",
			Type:        models.FieldTextarea,
			Required:    true,
			Value:       originalText,
			Placeholder: "Please provide more details about what you need",
		},
	}
}
