// Package bench drives the peripheral repeatedly for trace capture.
package bench

import (
	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/rxbuf"
)

// RepeatCount is the number of encryptions per benchmark command.
// It is tuned for the capturing instrument and fixed per build.
const RepeatCount = 120

// Buffer layout of the benchmark command.
const (
	PlaintextStart = 0
	StagingStart   = PlaintextStart + cryp.BlockSize
	StagingEnd     = StagingStart + cryp.BlockSize
)

// MinBufferSize is the smallest receive buffer the layout fits in.
const MinBufferSize = 128 + cryp.BlockSize

// Encrypter is the adapter operation the driver repeats.
type Encrypter interface {
	EncryptECB(key []byte, keyBits int, in, out []byte) cryp.Outcome
}

// Driver repeats an encryption of the plaintext region into the staging
// region, clearing staging space before every repetition.
type Driver struct {
	Encrypter Encrypter
	Repeat    int
	// Window is raised for the whole run, optional.
	Window cryp.Trigger
}

// NewDriver creates a Driver with RepeatCount repetitions and no window.
func NewDriver(enc Encrypter) *Driver {
	return &Driver{Encrypter: enc, Repeat: RepeatCount, Window: cryp.NopTrigger{}}
}

// Run executes all repetitions and returns the outcome of the last one.
// A Failure never stops the loop, so every run takes the same path.
// Buffer range errors abort the run.
func (d *Driver) Run(buf *rxbuf.Buffer, key []byte) (cryp.Outcome, error) {
	plain, err := buf.Bytes(PlaintextStart, StagingStart)
	if err != nil {
		return cryp.Failure, err
	}
	staging, err := buf.Bytes(StagingStart, StagingEnd)
	if err != nil {
		return cryp.Failure, err
	}
	clearEnd := buf.Len()

	if w := d.Window; w != nil {
		w.High()
		defer w.Low()
	}
	outcome := cryp.Failure
	for i := 0; i < d.Repeat; i++ {
		if err = buf.ZeroRange(StagingStart, clearEnd); err != nil {
			return cryp.Failure, err
		}
		outcome = d.Encrypter.EncryptECB(key, cryp.KeyBits128, plain, staging)
	}
	return outcome, nil
}
