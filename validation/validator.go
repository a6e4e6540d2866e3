package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/kbukum/aigateway/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
//
// Messages that already read as a sentence (they start with an upper-case
// letter) are used as is; others are prefixed with the field name.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}

	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Err is Validate returned as a plain error, so a nil result compares equal to nil.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (e FieldError) String() string {
	if r, _ := utf8.DecodeRuneInString(e.Message); r >= 'A' && r <= 'Z' {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required checks that a string is non-blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// MaxLength checks that a string has at most maxLen characters (runes).
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if utf8.RuneCountInString(value) > maxLen {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}

// Count checks that a collection holds between minN and maxN items.
func (v *Validator) Count(field string, n, minN, maxN int) *Validator {
	switch {
	case n < minN && minN == 1:
		v.AddError(field, fmt.Sprintf("At least one %s is required", singular(field)))
	case n < minN:
		v.AddError(field, fmt.Sprintf("At least %d %s are required", minN, field))
	case n > maxN:
		v.AddError(field, fmt.Sprintf("Maximum %d %s allowed", maxN, field))
	}
	return v
}

// MaxSize checks that a byte size does not exceed limit.
func (v *Validator) MaxSize(field string, size, limit int64) *Validator {
	if size > limit {
		v.AddError(field, "File size must be less than "+sizeLabel(limit))
	}
	return v
}

// FloatRange checks that value lies in [minVal, maxVal]. NaN is rejected.
func (v *Validator) FloatRange(field string, value, minVal, maxVal float64) *Validator {
	name := humanizeField(field)
	switch {
	case math.IsNaN(value):
		v.AddError(field, name+" must be a number")
	case value < minVal:
		v.AddError(field, fmt.Sprintf("%s must be at least %g", name, minVal))
	case value > maxVal:
		v.AddError(field, fmt.Sprintf("%s must be at most %g", name, maxVal))
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds message when condition does not hold.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// IsUUID reports whether value parses as a non-nil UUID.
func IsUUID(value string) bool {
	id, err := uuid.Parse(value)
	return err == nil && id != uuid.Nil
}

var sizeReplacer = strings.NewReplacer(" ", "", "iB", "B")

// sizeLabel renders 52428800 as "50MB".
func sizeLabel(n int64) string {
	return sizeReplacer.Replace(humanize.IBytes(uint64(n)))
}

func singular(field string) string {
	return strings.TrimSuffix(field, "s")
}

// humanizeField turns box_threshold into "Box threshold".
func humanizeField(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
