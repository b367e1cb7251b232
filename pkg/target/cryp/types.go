package cryp

import "errors"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// KeyBits128 is the only key length supported by the benchmark path.
const KeyBits128 = 128

// Mode selects the peripheral direction.
type Mode int

// Modes
const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	}
	return "unknown"
}

// Outcome is the two-valued result of one peripheral invocation.
type Outcome int

// Outcomes
const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// Peripheral is the capability interface of an AES-ECB engine.
// Crypt returns only after the operation completed or faulted.
type Peripheral interface {
	Crypt(mode Mode, key []byte, keyBits int, in, out []byte) error
}

// CryptFunc is func form of Peripheral.
type CryptFunc func(mode Mode, key []byte, keyBits int, in, out []byte) error

// Crypt implements Peripheral.
func (f CryptFunc) Crypt(mode Mode, key []byte, keyBits int, in, out []byte) error {
	return f(mode, key, keyBits, in, out)
}

var (
	// ErrBusy indicates the peripheral is processing another request.
	ErrBusy = errors.New("peripheral busy")
	// ErrKeySize indicates the key length is not supported.
	ErrKeySize = errors.New("unsupported key size")
	// ErrBlockSize indicates the input is not a whole number of blocks.
	ErrBlockSize = errors.New("input not a multiple of the block size")
	// ErrShortOutput indicates the output region is smaller than the input.
	ErrShortOutput = errors.New("output shorter than input")
)
