package domain

import "errors"

// Repository sentinel errors. Stores translate driver specific failures into these.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)
