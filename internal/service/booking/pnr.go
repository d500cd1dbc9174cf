package booking

import "crypto/rand"

const pnrAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const pnrLength = 8

// GeneratePNR returns prefix plus eight random base-36 uppercase
// characters. Uniqueness is not guaranteed by construction; the store
// layer rejects duplicates and the caller retries.
func GeneratePNR(prefix string) string {
	buf := make([]byte, pnrLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform RNG is broken.
		panic(err)
	}
	code := make([]byte, pnrLength)
	for i, b := range buf {
		code[i] = pnrAlphabet[int(b)%len(pnrAlphabet)]
	}
	return prefix + string(code)
}
