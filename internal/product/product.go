// Package product defines the input product record and its validation.
package product

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Record is the structured skincare product description every pipeline
// run starts from. All fields are required; list fields must be
// non-empty with non-empty elements.
type Record struct {
	Name           string   `json:"name" validate:"required"`
	Concentration  string   `json:"concentration" validate:"required"`
	SkinType       []string `json:"skin_type" validate:"required,min=1,dive,required"`
	KeyIngredients []string `json:"key_ingredients" validate:"required,min=1,dive,required"`
	Benefits       []string `json:"benefits" validate:"required,min=1,dive,required"`
	HowToUse       string   `json:"how_to_use" validate:"required"`
	SideEffects    string   `json:"side_effects" validate:"required"`
	Price          string   `json:"price" validate:"required"`
}

// ValidationError reports a product record that failed validation.
// Fields names every offending field with a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	sort.Strings(parts)
	return "invalid product record: " + strings.Join(parts, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Parse converts a raw JSON object into a validated Record.
// Returns a *ValidationError naming every offending field when the
// record is malformed or incomplete.
func Parse(raw map[string]any) (Record, error) {
	var rec Record

	data, err := json.Marshal(raw)
	if err != nil {
		return rec, &ValidationError{Fields: map[string]string{"record": "is not a JSON object"}}
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		// Wrong value types surface as unmarshal type errors.
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return rec, &ValidationError{Fields: map[string]string{
				typeErr.Field: fmt.Sprintf("must be of type %s", typeErr.Type),
			}}
		}
		return rec, &ValidationError{Fields: map[string]string{"record": "could not be decoded"}}
	}

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// Decode parses and validates a JSON document into a Record.
func Decode(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, &ValidationError{Fields: map[string]string{"record": "is not valid JSON"}}
	}
	return Parse(raw)
}

// Validate checks the record against its field constraints.
// Returns a *ValidationError on failure.
func (r Record) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: map[string]string{"record": "validation failed"}}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = validationMessage(e)
	}
	return &ValidationError{Fields: fields}
}

// validationMessage creates a human-readable message for a field error.
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + e.Param() + " entries"
	default:
		return "is invalid"
	}
}

// Default returns the built-in demo record used when no input is given.
func Default() Record {
	return Record{
		Name:           "GlowBoost Vitamin C Serum",
		Concentration:  "10% Vitamin C",
		SkinType:       []string{"Oily", "Combination"},
		KeyIngredients: []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:       []string{"Brightening", "Fades dark spots"},
		HowToUse:       "Apply 2-3 drops in the morning before sunscreen",
		SideEffects:    "Mild tingling for sensitive skin",
		Price:          "₹699",
	}
}
