package source

import "errors"

// ErrIllegalPosition is returned for a negative row/column, or when
// Position arithmetic would underflow a column below zero.
var ErrIllegalPosition = errors.New("source: illegal position")

// ErrNotFound is returned when a name cannot be located at a queried
// position, or find_after finds no further occurrence.
var ErrNotFound = errors.New("source: not found")
