// Package validation checks inbound values before any provider is called.
//
// Struct tag validation (go-playground/validator) covers request bodies:
//
//	type ExtractRequest struct {
//	    Text string `json:"text" validate:"required,max=10000"`
//	}
//	err := validation.Validate(req)
//
// The fluent Validator covers values that arrive outside a struct, such as
// multipart files and form fields:
//
//	v := validation.New()
//	v.Count("files", len(files), 1, 5)
//	v.FloatRange("box_threshold", threshold, 0, 1)
//	err := v.Err()
//
// Both return an errors.AppError with code VALIDATION_ERROR and the failing
// fields under Details["fields"].
package validation
