package utils

import (
	"math/rand"
)

const (
	labelAlphabet = "abcdefghijklmnopqrstuvwxyz"
	labelLength   = 4
)

// GenerateLabel produces the short public identifier for a match: 4 characters
// drawn uniformly, with replacement, from the lowercase alphabet. It never
// checks for collisions; callers that need freshness must handle the unique-key
// rejection themselves.
func GenerateLabel() string {
	b := make([]byte, labelLength)
	for i := range b {
		b[i] = labelAlphabet[rand.Intn(len(labelAlphabet))]
	}
	return string(b)
}
