package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(values ...int64) func() (*big.Int, error) {
	i := 0
	return func() (*big.Int, error) {
		v := values[i%len(values)]
		i++
		return big.NewInt(v), nil
	}
}

func TestReferenceGenerator_Generate(t *testing.T) {
	f := newFixture(t)
	f.lottery(t, "LOTTERY-0000000001")

	gen := NewReferenceGenerator(f.store, 5)
	gen.draw = sequence(1, 1, 4242)

	reference, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LOTTERY-0000004242", reference)
}

func TestReferenceGenerator_Exhausted(t *testing.T) {
	f := newFixture(t)
	f.lottery(t, "LOTTERY-0000000001")

	gen := NewReferenceGenerator(f.store, 3)
	gen.draw = sequence(1)

	_, err := gen.Generate(context.Background())
	assert.ErrorIs(t, err, ErrReferenceExhausted)
}

func TestReferenceGenerator_Format(t *testing.T) {
	gen := NewReferenceGenerator(newFixture(t).store, 1)

	for i := 0; i < 50; i++ {
		reference, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, `^LOTTERY-\d{10}$`, reference)
	}
}
