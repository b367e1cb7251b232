package dispatch

import (
	"fmt"

	"github.com/robotalks/pinata.go/pkg/target/bench"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/rxbuf"
)

// KeyMaterial is the provisioned AES-128 key.
type KeyMaterial [cryp.KeyBits128 / 8]byte

// Context holds the state a command borrows while it runs.
// It is created once at startup and owned by a single Dispatcher.
type Context struct {
	Key    KeyMaterial
	Buffer *rxbuf.Buffer
}

// DefaultBufferSize is the receive buffer capacity used by the daemon.
const DefaultBufferSize = 256

// NewContext provisions key and allocates a receive buffer.
func NewContext(key []byte, bufferSize int) (*Context, error) {
	c := &Context{}
	if len(key) != len(c.Key) {
		return nil, fmt.Errorf("key must be %d bytes, got %d", len(c.Key), len(key))
	}
	if bufferSize < bench.MinBufferSize {
		return nil, fmt.Errorf("buffer size %d below minimum %d", bufferSize, bench.MinBufferSize)
	}
	copy(c.Key[:], key)
	c.Buffer = rxbuf.New(bufferSize)
	return c, nil
}
