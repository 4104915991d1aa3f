package utils

import (
	"math/rand"
	"strings"
)

const ridAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RIDLength is the length of the public random identifier on shareable links.
const RIDLength = 15

// RandomRID generates an alphanumeric identifier for public lookup keys.
// Collision checking is the caller's job.
func RandomRID() string {
	var b strings.Builder
	b.Grow(RIDLength)
	for range RIDLength {
		b.WriteByte(ridAlphabet[rand.Intn(len(ridAlphabet))])
	}
	return b.String()
}
