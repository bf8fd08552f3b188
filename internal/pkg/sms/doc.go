// Package sms defines the contracts for sending text messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific SMS provider. Use cases work with the Messenger interface and
// Message payload; the concrete delivery mechanism (an HTTP gateway, a local
// log sink for development) is implemented elsewhere in this package.
package sms
