package common

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// randReader is a seam for tests.
var randReader io.Reader = rand.Reader

// RandomDigits returns a uniformly random decimal string of exactly n digits,
// zero-padded on the left (e.g. "004217" for n == 6).
//
// It returns an error if n is not positive, too large to be represented,
// or if the random source fails.
func RandomDigits(n int) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("invalid digit count %d: %w", n, ErrorValidation)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(randReader, limit)
	if err != nil {
		return "", fmt.Errorf("random source: %w", err)
	}

	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}
