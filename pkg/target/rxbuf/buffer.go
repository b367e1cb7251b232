package rxbuf

import "io"

// Buffer is a fixed-capacity receive buffer.
type Buffer struct {
	data    []byte
	scratch []byte
}

// New creates a Buffer with the given capacity.
func New(capacity int) *Buffer {
	return &Buffer{
		data:    make([]byte, capacity),
		scratch: make([]byte, capacity),
	}
}

// Len returns the capacity.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Fill reads exactly n bytes from r into the start of the buffer.
// The buffer is left untouched unless all n bytes arrive.
func (b *Buffer) Fill(r io.Reader, n int) error {
	if err := b.check(0, n); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, b.scratch[:n]); err != nil {
		return &LinkError{Op: "read", Err: err}
	}
	copy(b.data[:n], b.scratch[:n])
	return nil
}

// ZeroRange overwrites [start, end) with zeros.
func (b *Buffer) ZeroRange(start, end int) error {
	if err := b.check(start, end); err != nil {
		return err
	}
	region := b.data[start:end]
	for i := range region {
		region[i] = 0
	}
	return nil
}

// Bytes returns the view of [start, end). The view shares storage with the
// buffer and is valid until the buffer is next written.
func (b *Buffer) Bytes(start, end int) ([]byte, error) {
	if err := b.check(start, end); err != nil {
		return nil, err
	}
	return b.data[start:end:end], nil
}

func (b *Buffer) check(start, end int) error {
	if start < 0 || end < start || end > len(b.data) {
		return rangeError(start, end, len(b.data))
	}
	return nil
}
