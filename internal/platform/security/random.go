package security

import (
	"crypto/rand"
	"fmt"
)

// RandomDigits returns a fixed-width numeric code of n digits, leading
// zeros included.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	max := 1
	for i := 0; i < n; i++ {
		max *= 10
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	val := 0
	for _, b := range buf {
		val = (val<<8 + int(b)) % max
	}
	return fmt.Sprintf("%0*d", n, val), nil
}
