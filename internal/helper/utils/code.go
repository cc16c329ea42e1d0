package utils

import "crypto/rand"

// GenerateCode returns a string of length uniformly random decimal
// digits from a cryptographically secure source. Bytes >= 250 are
// rejected so the modulo does not bias toward low digits.
func GenerateCode(length int) string {
	if length <= 0 {
		return ""
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		// rand.Read never fails as of Go 1.24.
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}
