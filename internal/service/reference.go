package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

var referenceSpace = big.NewInt(10_000_000_000)

type ReferenceChecker interface {
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

// ReferenceGenerator hands out LOTTERY-<10 digits> codes that no stored
// lottery uses yet.
type ReferenceGenerator struct {
	checker  ReferenceChecker
	attempts int
	draw     func() (*big.Int, error)
}

func NewReferenceGenerator(checker ReferenceChecker, attempts int) *ReferenceGenerator {
	if attempts < 1 {
		attempts = 1
	}

	return &ReferenceGenerator{
		checker:  checker,
		attempts: attempts,
		draw: func() (*big.Int, error) {
			return rand.Int(rand.Reader, referenceSpace)
		},
	}
}

func (g *ReferenceGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.attempts; i++ {
		n, err := g.draw()
		if err != nil {
			return "", fmt.Errorf("g.draw -> %w", err)
		}

		reference := fmt.Sprintf("%s%010d", domain.ReferencePrefix, n)
		exists, err := g.checker.ReferenceExists(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("g.checker.ReferenceExists -> %w", err)
		}
		if !exists {
			return reference, nil
		}
	}

	return "", ErrReferenceExhausted
}
