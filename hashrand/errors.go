package hashrand

import "errors"

// ErrNegativeTrials indicates a Binomial call was made with n < 0.
var ErrNegativeTrials = errors.New("hashrand: number of trials must be non-negative")

// ErrInvalidProbability indicates a Binomial call was made with p outside [0, 1].
var ErrInvalidProbability = errors.New("hashrand: probability must be in [0, 1]")
