package validator

import (
	"errors"
	"testing"
)

type signupForm struct {
	PhoneNumber string `validate:"required,phone"`
	FullName    string `validate:"required,min=2"`
}

func TestV10ValidatorPhoneRule(t *testing.T) {
	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "TenDigits", phone: "9876543210", valid: true},
		{name: "TooShort", phone: "98765", valid: false},
		{name: "TooLong", phone: "98765432101", valid: false},
		{name: "WithCountryPrefix", phone: "+919876543210", valid: false},
		{name: "NonNumeric", phone: "98765abcde", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			err := v.Validate(signupForm{PhoneNumber: tc.phone, FullName: "Piyush Bose"})

			// Assert
			if tc.valid && err != nil {
				t.Fatalf("expected %q to be valid, got %v", tc.phone, err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected %q to be rejected", tc.phone)
			}
		})
	}
}

func TestV10ValidatorSnakeCaseKeys(t *testing.T) {
	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	// Act
	err = v.Validate(signupForm{PhoneNumber: "123", FullName: ""})

	// Assert
	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %v", err)
	}
	if _, ok := verr["phone_number"]; !ok {
		t.Fatalf("expected snake_case phone_number key, got %v", verr.Values())
	}
	if _, ok := verr["full_name"]; !ok {
		t.Fatalf("expected snake_case full_name key, got %v", verr.Values())
	}
}
