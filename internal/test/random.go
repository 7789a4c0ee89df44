package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// RandomASCIIString returns a pseudo-random ASCII string with a length
// picked from [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	var b strings.Builder
	length := minLen + randomIntn(maxLen-minLen+1)
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(asciiLetters[randomIntn(len(asciiLetters))])
	}
	return b.String()
}

// RandomEmail returns a unique-looking address for member fixtures.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(8, 12)) + "@example.org"
}
