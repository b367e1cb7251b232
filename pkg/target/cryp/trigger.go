package cryp

import "sync/atomic"

// Trigger is the GPIO line marking the measurement window.
type Trigger interface {
	High()
	Low()
}

// NopTrigger ignores trigger changes.
type NopTrigger struct{}

// High implements Trigger.
func (NopTrigger) High() {}

// Low implements Trigger.
func (NopTrigger) Low() {}

// CountingTrigger counts the rising edges it sees.
type CountingTrigger struct {
	edges int64
	high  int32
}

// High implements Trigger.
func (t *CountingTrigger) High() {
	if atomic.CompareAndSwapInt32(&t.high, 0, 1) {
		atomic.AddInt64(&t.edges, 1)
	}
}

// Low implements Trigger.
func (t *CountingTrigger) Low() {
	atomic.StoreInt32(&t.high, 0)
}

// Edges returns the number of rising edges so far.
func (t *CountingTrigger) Edges() int64 {
	return atomic.LoadInt64(&t.edges)
}

// IsHigh reports the current line level.
func (t *CountingTrigger) IsHigh() bool {
	return atomic.LoadInt32(&t.high) != 0
}

// Triggered asserts Trigger around every call to the wrapped Peripheral.
type Triggered struct {
	Peripheral Peripheral
	Trigger    Trigger
}

// Crypt implements Peripheral.
func (t *Triggered) Crypt(mode Mode, key []byte, keyBits int, in, out []byte) error {
	t.Trigger.High()
	err := t.Peripheral.Crypt(mode, key, keyBits, in, out)
	t.Trigger.Low()
	return err
}
