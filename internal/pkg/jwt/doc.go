// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A typed Claims wrapper binding the subject to a fresh correlation id.
//   - A symmetric HS512 implementation for generating and verifying tokens.
//   - Context helpers for storing and retrieving authenticated claims.
package jwt
