// Package generator produces random passwords drawn uniformly from a fixed alphabet.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

// DefaultLength is the number of characters in a generated password.
const DefaultLength = 16

// Alphabet lists every symbol a generated password may contain.
const Alphabet = Lower + Digits + Upper + Punct

// Character classes of Alphabet.
const (
	Lower  = "abcdefghijklmnopqrstuvwxyz"
	Digits = "0123456789"
	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Punct  = "!@#$%^&*()_-[]{}|:;,.<>?"
)

// Generator samples passwords. The zero value is not usable; call New.
type Generator struct {
	length int
	rnd    io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithLength overrides DefaultLength. Non-positive values are ignored.
func WithLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.length = n
		}
	}
}

// WithRand replaces crypto/rand.Reader as the entropy source.
func WithRand(r io.Reader) Option {
	return func(g *Generator) { g.rnd = r }
}

// New constructs a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{length: DefaultLength, rnd: rand.Reader}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Length reports how many characters Generate returns.
func (g *Generator) Length() int { return g.length }

// Generate returns a new password; every position is an independent uniform pick from Alphabet.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, g.length)
	for i := range out {
		idx, err := rand.Int(g.rnd, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = Alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Entropy estimates the strength of pw in bits.
func Entropy(pw string) float64 {
	return passwordvalidator.GetEntropy(pw)
}

// Validate returns an error describing how to strengthen pw when its entropy is below minBits.
func Validate(pw string, minBits float64) error {
	return passwordvalidator.Validate(pw, minBits)
}
