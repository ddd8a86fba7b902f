package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	verifyOTPDigits = 6
	bankOTPDigits   = 4
)

// generateOTPCode returns a zero-padded numeric code of the given length
// from a CSPRNG.
func generateOTPCode(digits int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < digits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
