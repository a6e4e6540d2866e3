// Package errors defines the gateway error taxonomy.
//
// Every failure surfaced to a caller is an *AppError carrying one of the
// codes in codes.go: CONFIG_ERROR, VALIDATION_ERROR, TRANSPORT_ERROR,
// PROVIDER_ERROR or PARSE_ERROR. Handlers render it with ToResponse.
package errors
