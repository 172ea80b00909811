package geometric

import "errors"

// ErrRadiusExceedsChunk indicates the configured radius is large enough
// that cell_size >= r could not be enforced within a single chunk, which
// would require widening the 3x3(x3) neighbor stencil — out of scope, per
// the module's re-architecture guidance.
var ErrRadiusExceedsChunk = errors.New("geometric: radius exceeds the cell size")

// ErrNonPositiveRadius indicates r (or the hyperbolic threshold) was <= 0.
var ErrNonPositiveRadius = errors.New("geometric: radius must be positive")
