package probability

import "math/big"

// Choose returns the number of k-combinations of n items. It returns zero
// whenever k lies outside [0, n], including for negative n, so callers can
// sum over splits without bounds checks.
func Choose(n, k int) *big.Int {
	if n < 0 || k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}
