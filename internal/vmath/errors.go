package vmath

import "errors"

// ErrDimensionMismatch indicates operands whose arities cannot be combined.
var ErrDimensionMismatch = errors.New("vmath: dimension mismatch")
