package apperrors

import "errors"

var (
	// ErrNotFound indicates a referenced Want or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidContent indicates uploaded bytes do not match any
	// recognizable file type.
	ErrInvalidContent = errors.New("invalid content")

	// ErrInvalidInput indicates a caller-supplied field failed
	// validation.
	ErrInvalidInput = errors.New("invalid input")
)
