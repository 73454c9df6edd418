package seedlog

import "errors"

var (
	// ErrSourceNotFound is returned when the log cannot be opened or read.
	ErrSourceNotFound = errors.New("❌ seed log not found or unreadable")

	// ErrInvalidParameter is returned when a header value cannot be used.
	ErrInvalidParameter = errors.New("❌ invalid parameter")
)
