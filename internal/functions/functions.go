// Package functions holds the application's serverless handlers. Each
// handler is a plain function or method so it can be invoked directly,
// bypassing the trigger dispatchers in cmd/.
package functions

import (
	"context"
	"errors"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
)

// Collections and trigger patterns used by the handlers
const (
	LowercasePattern    = "/lowercase/{id}"
	UppercaseCollection = "uppercase"
	UsersCollection     = "users"
)

var (
	// ErrFieldMissing is returned when a triggering document lacks a required field
	ErrFieldMissing = errors.New("required document field missing")
	// ErrMissingUID is returned when a user event carries no uid
	ErrMissingUID = errors.New("user record has no uid")
)

// DocumentWriter is the slice of the document store the handlers need
type DocumentWriter interface {
	Set(ctx context.Context, p docstore.Path, data map[string]any) error
}

// Set is the handler set. Handlers that write documents hang off it so the
// store is supplied explicitly instead of held in package state.
type Set struct {
	docs DocumentWriter
}

// New creates a handler set writing through docs
func New(docs DocumentWriter) *Set {
	return &Set{docs: docs}
}
