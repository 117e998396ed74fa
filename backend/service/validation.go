package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExperienceOptions is the prompt catalogue the form's dropdown offers. The
// server does not restrict submissions to it: the client also lets people
// type their own prompt.
var ExperienceOptions = []string{
	"A moment you may not remember, but I'll never forget",
	"A lesson that changed my perspective",
	"When you showed true leadership",
	"A project that made a difference",
}

// TributePayload is a candidate submission before validation. Fields arrive
// as raw form strings and may be empty.
type TributePayload struct {
	Experience string `form:"experience" validate:"required"`
	Answer     string `form:"answer" validate:"required,min=40"`
	FullName   string `form:"fullName" validate:"required,min=3"`
	Department string `form:"department" validate:"required,min=2"`
}

// Trimmed returns a copy of the payload with surrounding whitespace removed
// from every field.
func (p TributePayload) Trimmed() TributePayload {
	return TributePayload{
		Experience: strings.TrimSpace(p.Experience),
		Answer:     strings.TrimSpace(p.Answer),
		FullName:   strings.TrimSpace(p.FullName),
		Department: strings.TrimSpace(p.Department),
	}
}

// ValidationError carries a field->message map for every invalid field.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "payload validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]map[string]string{
	"experience": {
		"required": "Please select an experience to continue.",
	},
	"answer": {
		"required": "Please share your memory in the answer field.",
		"min":      "Please write at least 40 characters so we capture enough detail.",
	},
	"fullName": {
		"required": "Full name is required.",
		"min":      "Please enter at least 3 characters for the name.",
	},
	"department": {
		"required": "Department is required.",
		"min":      "Please enter a valid department.",
	},
}

// ValidateTributePayload checks a payload against the field rules on trimmed
// values and returns a message for every failing field. An empty map means
// the payload is valid. Pure and deterministic; the same rules run client
// side, but this pass is the authoritative one.
func ValidateTributePayload(payload TributePayload) map[string]string {
	fieldErrors := map[string]string{}
	err := validate.Struct(payload.Trimmed())
	if err == nil {
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["payload"] = "Invalid submission."
		return fieldErrors
	}
	for _, fieldError := range validationErrors {
		if messages, ok := fieldMessages[fieldError.Field()]; ok {
			if msg, ok := messages[fieldError.Tag()]; ok {
				fieldErrors[fieldError.Field()] = msg
				continue
			}
		}
		fieldErrors[fieldError.Field()] = "Invalid value."
	}
	return fieldErrors
}
