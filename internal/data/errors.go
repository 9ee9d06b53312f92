package data

import "errors"

// Error classes shared by the stores and the services built on them. Stores wrap
// driver errors with one of these so callers can branch with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrWrite     = errors.New("remote write failed")
	ErrFetch     = errors.New("remote fetch failed")
	ErrInvalid   = errors.New("validation failed")
	ErrForbidden = errors.New("forbidden")
	ErrRollback  = errors.New("rollback failed")
)
