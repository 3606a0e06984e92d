package storage

import "errors"

var (
	// ErrValueNotFound indicates the node holds no value at the queried key.
	ErrValueNotFound = errors.New("storage: no value at key")

	// ErrInvalidKey indicates a storage key is empty or not valid hex.
	ErrInvalidKey = errors.New("storage: invalid storage key")
)
