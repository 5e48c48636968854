package types

import "errors"

// Domain error taxonomy. Services wrap these with a user-facing message
// (fmt.Errorf("%w: Email already registered", ErrConflict)); handlers map them
// to HTTP status codes at the boundary and nothing else crosses it unhandled.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrNotFound        = errors.New("requested item not found")
	ErrInternal        = errors.New("internal error")
)
