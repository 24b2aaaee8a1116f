package domain

import "errors"

// Sentinel errors. Callers wrap them with fmt.Errorf("%w: ...") to add detail
// and match them with errors.Is.
var (
	// ErrInvalidRequest indicates that request parameters failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSessionNotFound indicates that no filter session exists for the given id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownFilter indicates a filter key outside the room filter vocabulary.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidFilterValue indicates a filter value of the wrong shape for its key.
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// ErrUnknownSortOption indicates a sort option outside the supported set.
	ErrUnknownSortOption = errors.New("unknown sort option")
)
