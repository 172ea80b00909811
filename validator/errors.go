package validator

import "errors"

// ErrRankCountMismatch indicates AllGatherRanges returned a different
// number of ranges than the communicator size.
var ErrRankCountMismatch = errors.New("validator: number of vertex ranges differs from communicator size")
