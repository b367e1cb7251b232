package cryp

import (
	"gitlab.com/yawning/bsaes.git"
)

// Soft is a simulated peripheral backed by a constant-time bitsliced AES.
// Like the hardware, it loads the key on every request.
type Soft struct {
	staging []byte
}

// NewSoft creates a Soft peripheral.
func NewSoft() *Soft {
	return &Soft{}
}

// Crypt implements Peripheral.
func (s *Soft) Crypt(mode Mode, key []byte, keyBits int, in, out []byte) error {
	if len(key)*8 != keyBits {
		return ErrKeySize
	}
	if len(in)%BlockSize != 0 {
		return ErrBlockSize
	}
	if len(out) < len(in) {
		return ErrShortOutput
	}
	block, err := bsaes.NewCipher(key)
	if err != nil {
		return err
	}
	// in is consumed entirely before out is written.
	if cap(s.staging) < len(in) {
		s.staging = make([]byte, len(in))
	}
	src := s.staging[:len(in)]
	copy(src, in)
	for off := 0; off < len(src); off += BlockSize {
		dst, blk := out[off:off+BlockSize], src[off:off+BlockSize]
		if mode == ModeDecrypt {
			block.Decrypt(dst, blk)
		} else {
			block.Encrypt(dst, blk)
		}
	}
	for i := range src {
		src[i] = 0
	}
	return nil
}
