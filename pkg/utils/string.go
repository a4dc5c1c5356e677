package utils

import (
	"crypto/rand"
	"math/big"
)

const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns an upper-case code without easily confused
// characters, used for booking references.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	limit := big.NewInt(int64(len(charset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}
