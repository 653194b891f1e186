package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Lookup and constraint errors. Store operations wrap these; match them with
// errors.Is.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicateName     = errors.New("name already exists")
	ErrAlreadyLinked     = errors.New("association already exists")
	ErrConstraint        = errors.New("constraint violation")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Input validation errors.
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidRecord   = errors.New("invalid record")
)
