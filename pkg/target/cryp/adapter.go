package cryp

import "github.com/golang/glog"

// Adapter invokes a Peripheral and reduces the result to an Outcome.
type Adapter struct {
	Peripheral Peripheral
}

// NewAdapter wraps a peripheral.
func NewAdapter(p Peripheral) *Adapter {
	return &Adapter{Peripheral: p}
}

// EncryptECB encrypts in into out with AES-ECB. No retry is attempted.
func (a *Adapter) EncryptECB(key []byte, keyBits int, in, out []byte) Outcome {
	if err := checkRequest(key, keyBits, in, out); err != nil {
		glog.V(2).Infof("encrypt rejected: %v", err)
		return Failure
	}
	if err := a.Peripheral.Crypt(ModeEncrypt, key, keyBits, in, out); err != nil {
		glog.V(2).Infof("encrypt failed: %v", err)
		return Failure
	}
	return Success
}

func checkRequest(key []byte, keyBits int, in, out []byte) error {
	if keyBits != KeyBits128 || len(key)*8 != keyBits {
		return ErrKeySize
	}
	if len(in) == 0 || len(in)%BlockSize != 0 {
		return ErrBlockSize
	}
	if len(out) < len(in) {
		return ErrShortOutput
	}
	return nil
}
