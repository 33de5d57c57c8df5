// Package uuid hands out random identifiers behind an interface so tests can pin them.
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid . Generator

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers for sessions and outgoing requests
type Generator interface {
	New() string
}

// RandomGenerator issues version 4 UUIDs
type RandomGenerator struct{}

// New returns a fresh random UUID string
func (g *RandomGenerator) New() string {
	return uuid.NewString()
}

// NewRandomGenerator creates a RandomGenerator
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}
