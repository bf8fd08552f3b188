// Package otp implements a stateless, time-windowed one-time code scheme.
//
// Codes are never stored: they are recomputed from the identity, a per-attempt
// correlation id and the current time window, then compared. A code is valid
// for its own window plus the immediately following one, giving roughly twice
// the window size of total validity to absorb clock and delivery skew.
package otp
