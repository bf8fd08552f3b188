package inbound

import (
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/usecase"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the phone OTP authentication flow.
type HTTPEndpoint struct {
	uc uc
}

// Signup registers a phone number and dispatches a verification code.
// @Summary Signup with phone number
// @Description Creates (or reuses) the account for the phone number and sends a one-time code.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 202 {object} SignupResponse "Code dispatched"
// @Failure 409 "Phone number already verified"
// @Failure 422 "Validation error"
// @Failure 500 "Internal server error"
// @Router /api/v1/identity/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		PhoneNumber: req.PhoneNumber,
		FullName:    req.FullName,
		Email:       req.Email,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		CorrelationID: resp.CorrelationID,
		User:          newUserResponse(resp.User),
		OTP:           resp.OTP,
	}, nil
}

// Login starts a login attempt for a verified phone number.
// @Summary Login with phone number
// @Description Dispatches a one-time login code to a verified phone number.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 202 {object} LoginResponse "Code dispatched"
// @Failure 403 "Account not verified"
// @Failure 404 "Account not found"
// @Failure 422 "Validation error"
// @Failure 500 "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{PhoneNumber: req.PhoneNumber})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		CorrelationID: resp.CorrelationID,
		OTP:           resp.OTP,
	}, nil
}

// Verify checks a one-time code and issues a session token.
// @Summary Verify one-time code
// @Description Validates the code against the attempt correlation id and returns a session token.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify payload"
// @Success 200 {object} VerifyResponse "Session issued"
// @Failure 401 "Invalid or expired OTP"
// @Failure 403 "Account not verified"
// @Failure 404 "Account not found"
// @Failure 422 "Validation error"
// @Failure 500 "Internal server error"
// @Router /api/v1/identity/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		PhoneNumber:   req.PhoneNumber,
		OTP:           req.OTP,
		CorrelationID: req.CorrelationID,
		Purpose:       entity.PurposeFromString(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Token:         resp.Token,
		CorrelationID: resp.CorrelationID,
		User:          newUserResponse(resp.User),
	}, nil
}

// Profile returns the authenticated user.
// @Summary Get own profile
// @Tags Identity, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "Authenticated user"
// @Failure 401 "Authentication required"
// @Failure 404 "Account not found"
// @Failure 500 "Internal server error"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{User: newUserResponse(resp.User)}, nil
}
