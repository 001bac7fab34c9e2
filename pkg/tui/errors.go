package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C or end of input).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownVariant is returned when a theme variant is not defined by the
	// manifest.
	ErrUnknownVariant = errors.New("tui: unknown theme variant")
)
