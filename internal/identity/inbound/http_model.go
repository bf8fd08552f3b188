package inbound

import (
	"net/http"
	"time"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
)

type UserResponse struct {
	ID          int64     `json:"id,string"`
	PhoneNumber string    `json:"phone_number"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName,
		Email:       u.Email,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
	}
}

type SignupRequest struct {
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
}

type SignupResponse struct {
	CorrelationID string       `json:"correlation_id"`
	User          UserResponse `json:"user"`
	OTP           string       `json:"otp,omitempty"`
}

func (SignupResponse) Message() string {
	return "We have sent a verification code to your phone number."
}

func (SignupResponse) StatusCode() int {
	return http.StatusAccepted
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type LoginResponse struct {
	CorrelationID string `json:"correlation_id"`
	OTP           string `json:"otp,omitempty"`
}

func (LoginResponse) Message() string {
	return "We have sent a login code to your phone number."
}

func (LoginResponse) StatusCode() int {
	return http.StatusAccepted
}

type VerifyRequest struct {
	PhoneNumber   string `json:"phone_number"`
	OTP           string `json:"otp"`
	CorrelationID string `json:"correlation_id"`
	Purpose       string `json:"purpose"`
}

type VerifyResponse struct {
	Token         string       `json:"token"`
	CorrelationID string       `json:"correlation_id"`
	User          UserResponse `json:"user"`
}

func (VerifyResponse) Message() string {
	return "Verification successful."
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}
