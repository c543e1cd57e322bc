package bookstore

import "errors"

var (
	// ErrNotFound is returned when an update or delete matched no row.
	ErrNotFound = errors.New("not found")

	// ErrReferenceMissing is returned when an order names a customer or book
	// that does not exist. No order row is written.
	ErrReferenceMissing = errors.New("customer or book not found")

	// ErrInUse is returned when deleting a book that orders still reference.
	ErrInUse = errors.New("referenced by existing orders")

	// ErrInvalid is returned when input fails validation.
	ErrInvalid = errors.New("invalid input")
)
