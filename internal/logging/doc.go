// Package logging defines the Logger interface the rest of fizzlab logs
// through, with adapters backed by zerolog and by the standard library's
// log package. Components depend on the interface so the backend stays
// swappable in tests.
package logging
