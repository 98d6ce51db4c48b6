package emailfiles

import "errors"

var (
	// ErrNotFound covers both a missing file and a file owned by someone
	// else; callers cannot tell the two apart.
	ErrNotFound = errors.New("email file not found")

	// ErrInvalidInput marks malformed requests (missing file, empty name).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidType marks an extension or declared MIME type outside the
	// allowed set.
	ErrInvalidType = errors.New("invalid file type")

	// ErrTooLarge marks an upload above the size limit.
	ErrTooLarge = errors.New("file too large")
)
