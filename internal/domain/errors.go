package domain

import "errors"

var (
	// ErrInvalidRegion is returned when a region cannot be resolved.
	ErrInvalidRegion = errors.New("invalid region")
	// ErrNoPending is returned when an operation needs a staged bundle and none exists.
	ErrNoPending = errors.New("no pending sample")
	// ErrNameTimeout is returned when the naming prompt does not answer within its bound.
	ErrNameTimeout = errors.New("naming prompt timed out")
	// ErrSuperseded is returned when the pending bundle was replaced while naming.
	ErrSuperseded = errors.New("pending sample superseded")
	// ErrNoDisplay is returned by capture providers when no display is active.
	ErrNoDisplay = errors.New("no active display")
	// ErrNotFound is returned by catalog lookups.
	ErrNotFound = errors.New("not found")
)
