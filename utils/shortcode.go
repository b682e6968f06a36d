// utils/shortcode.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const shortCodeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateShortCode returns a random code for short links. The alphabet
// drops easily-confused characters (0/O, 1/l/I).
func GenerateShortCode(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(shortCodeChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = shortCodeChars[0]
			continue
		}
		b[i] = shortCodeChars[n.Int64()]
	}
	return string(b)
}
