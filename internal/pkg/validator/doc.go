// Package validator validates request and dependency structs.
//
// Callers depend on the Validator interface; the concrete implementation is
// backed by go-playground/validator v10 with the domain rules (such as the
// 10-digit phone format) registered on construction.
package validator
