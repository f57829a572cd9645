// Package memory keeps the in-session conversation transcript.
//
// The transcript is append-only: turns are never reordered or edited, and
// every read returns a fresh copy so callers can iterate as often as they
// like. Nothing is persisted.
package memory
