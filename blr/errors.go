package blr

import "errors"

var ErrDimensionMismatch = errors.New("dimension mismatch")
var ErrNotPositiveDefinite = errors.New("matrix not positive definite")
