package vrpinstance

import "errors"

// ErrMalformedInstance indicates Validate found a preprocessing invariant
// violated (out-of-window arc domain, mismatched slice lengths, etc.).
var ErrMalformedInstance = errors.New("vrpinstance: malformed instance")

const eps = 1e-9

func epsilonSmaller(a, b float64) bool { return a < b-eps }
func epsilonBigger(a, b float64) bool  { return a > b+eps }
