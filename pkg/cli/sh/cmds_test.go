package sh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, name := range []string{"", "random", "mc", "tvla"} {
		t.Run("gen-"+name, func(t *testing.T) {
			gen, err := NewGenerator(name, rng)
			require.NoError(t, err)
			require.Len(t, gen.Next(), 16)
		})
	}
	_, err := NewGenerator("chosen", rng)
	require.Error(t, err)
}
