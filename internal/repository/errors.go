package repository

import "errors"

var (
	// ErrNotFound means the key has never been written. It is the normal
	// fresh-install case and callers substitute defaults.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt means a stored value exists but cannot be decoded.
	ErrCorrupt = errors.New("corrupt stored value")
)
