package entity

import "strings"

// Purpose distinguishes which flow an OTP was issued for. The code derivation
// does not depend on it; verification behavior does.
type Purpose int16

const (
	// PurposeUnknown is mean purpose is not known / not set.
	PurposeUnknown Purpose = 0

	// PurposeSignup mean the OTP belongs to a signup attempt and a successful
	// verification marks the account verified.
	PurposeSignup Purpose = 1

	// PurposeLogin mean the OTP belongs to a login attempt on an account that
	// is already verified.
	PurposeLogin Purpose = 2
)

func (p Purpose) String() string {
	switch p {
	case PurposeSignup:
		return "Signup"
	case PurposeLogin:
		return "Login"
	default:
		return "Unknown"
	}
}

func (p Purpose) IsUnknown() bool {
	switch p {
	case PurposeSignup, PurposeLogin:
		return false
	default:
		return true
	}
}

func PurposeFromString(s string) Purpose {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signup":
		return PurposeSignup
	case "login":
		return PurposeLogin
	default:
		return PurposeUnknown
	}
}
