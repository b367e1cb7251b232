// Package inputs generates plaintexts for acquisition campaigns.
package inputs

import (
	"math/rand"

	"github.com/robotalks/pinata.go/pkg/target/cryp"
)

// Generator produces the next plaintext block.
type Generator interface {
	Next() []byte
}

// GeneratorFunc is func form of Generator.
type GeneratorFunc func() []byte

// Next implements Generator.
func (f GeneratorFunc) Next() []byte {
	return f()
}

// Random returns uniformly random blocks.
func Random(rng *rand.Rand) Generator {
	return GeneratorFunc(func() []byte {
		b := make([]byte, cryp.BlockSize)
		rng.Read(b)
		return b
	})
}

// MixColumns returns sparse blocks for attacks on the first MixColumns
// output: a random offset in 1..4 is drawn per block and only the bytes at
// positions i with (i+offset)%4 == 0 are random, one per column.
func MixColumns(rng *rand.Rand) Generator {
	return GeneratorFunc(func() []byte {
		b := make([]byte, cryp.BlockSize)
		offset := 1 + rng.Intn(4)
		for i := range b {
			if (i+offset)%4 == 0 {
				b[i] = byte(rng.Intn(256))
			}
		}
		return b
	})
}

// FixedVsRandom interleaves fixed and random blocks for a TVLA
// non-specific test. The choice for each block is random; LastFixed reports
// the class of the last block returned.
//
// The fixed class is a plain input block. It is not a semi-fixed internal
// state decrypted under the key, so it targets input-dependent leakage only.
type FixedVsRandom struct {
	Fixed []byte

	rng       *rand.Rand
	lastFixed bool
}

// NewFixedVsRandom creates the generator.
func NewFixedVsRandom(rng *rand.Rand, fixed []byte) *FixedVsRandom {
	return &FixedVsRandom{Fixed: fixed, rng: rng}
}

// Next implements Generator.
func (g *FixedVsRandom) Next() []byte {
	b := make([]byte, cryp.BlockSize)
	if g.lastFixed = g.rng.Intn(2) == 0; g.lastFixed {
		copy(b, g.Fixed)
	} else {
		g.rng.Read(b)
	}
	return b
}

// LastFixed reports whether the last block came from the fixed set.
func (g *FixedVsRandom) LastFixed() bool {
	return g.lastFixed
}
