// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly. Windowed one-time codes make this more than a testing
// nicety: deriving and checking a code against a chosen instant is part of the
// protocol, so tests pin the clock to exercise window boundaries.
package clock
