package rxbuf

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func filled(capacity int, b byte) *Buffer {
	buf := New(capacity)
	for i := range buf.data {
		buf.data[i] = b
	}
	return buf
}

func TestFill(t *testing.T) {
	buf := filled(32, 0xaa)
	require.NoError(t, buf.Fill(bytes.NewReader([]byte{1, 2, 3, 4, 5}), 4))
	view, err := buf.Bytes(0, 6)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 0xaa, 0xaa}, view)
}

func TestFillLinkError(t *testing.T) {
	buf := filled(32, 0xaa)
	linkErr := errors.New("wire cut")
	err := buf.Fill(&failingReader{data: []byte{1, 2}, err: io.EOF}, 16)
	require.Error(t, err)
	var le *LinkError
	require.True(t, errors.As(err, &le))
	require.Equal(t, "read", le.Op)
	require.Equal(t, io.ErrUnexpectedEOF, le.Err)

	err = buf.Fill(&failingReader{err: linkErr}, 16)
	require.True(t, errors.As(err, &le))
	require.Equal(t, linkErr, le.Err)

	// partial data never reaches the buffer.
	view, err := buf.Bytes(0, 32)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xaa}, 32), view)
}

func TestZeroRange(t *testing.T) {
	buf := filled(32, 0xaa)
	require.NoError(t, buf.ZeroRange(16, 32))
	view, err := buf.Bytes(0, 32)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xaa}, 16), view[:16])
	require.Equal(t, make([]byte, 16), view[16:])
	require.NoError(t, buf.ZeroRange(4, 4))
}

func TestOutOfBounds(t *testing.T) {
	testCases := []struct {
		name string
		op   func(*Buffer) error
	}{
		{"fill beyond capacity", func(b *Buffer) error {
			return b.Fill(bytes.NewReader(bytes.Repeat([]byte{1}, 64)), 33)
		}},
		{"fill negative", func(b *Buffer) error {
			return b.Fill(bytes.NewReader(nil), -1)
		}},
		{"zero beyond capacity", func(b *Buffer) error { return b.ZeroRange(16, 33) }},
		{"zero negative start", func(b *Buffer) error { return b.ZeroRange(-1, 4) }},
		{"zero inverted", func(b *Buffer) error { return b.ZeroRange(8, 4) }},
		{"view beyond capacity", func(b *Buffer) error {
			_, err := b.Bytes(0, 40)
			return err
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := filled(32, 0xaa)
			err := tc.op(buf)
			require.True(t, errors.Is(err, ErrOutOfBounds), "unexpected error %v", err)
			require.Equal(t, bytes.Repeat([]byte{0xaa}, 32), buf.data)
		})
	}
}
