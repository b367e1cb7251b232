package trs

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderBytes(t *testing.T) {
	h := Header{
		NumTraces:  2,
		NumSamples: 3,
		SampleSize: 1,
		DataLength: 32,
		XLabel:     "ns",
		XScale:     1,
	}
	b, err := h.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x41, 4, 2, 0, 0, 0,
		0x42, 4, 3, 0, 0, 0,
		0x43, 1, 0x01,
		0x44, 2, 32, 0,
		0x49, 2, 'n', 's',
		0x4b, 4, 0x00, 0x00, 0x80, 0x3f,
		0x56, 4, 0, 0, 0, 0,
		0x5f, 0,
	}, b)
}

func TestHeaderLongValue(t *testing.T) {
	h := Header{SampleSize: 2, FloatSample: true, Description: strings.Repeat("d", 200)}
	b, err := h.Bytes()
	require.NoError(t, err)
	require.Equal(t, byte(0x12), b[14])
	idx := bytes.IndexByte(b, TagDescription)
	require.Equal(t, []byte{TagDescription, 0x84, 200, 0, 0, 0}, b[idx:idx+6])
}

func TestHeaderSampleSize(t *testing.T) {
	_, err := (&Header{SampleSize: 3}).Bytes()
	require.Equal(t, ErrSampleSize, err)
}

func TestWriter(t *testing.T) {
	var out bytes.Buffer
	h := Header{NumTraces: 1, NumSamples: 2, SampleSize: 1, DataLength: 4}
	w, err := NewWriter(&out, h)
	require.NoError(t, err)
	require.True(t, errors.Is(w.WriteTrace([]byte{1, 2, 3}, []byte{9, 9}), ErrTraceShape))
	require.NoError(t, w.WriteTrace([]byte{1, 2, 3, 4}, []byte{0x7f, 0x80}))
	require.True(t, errors.Is(w.WriteTrace([]byte{1, 2, 3, 4}, []byte{0, 0}), ErrTraceShape))
	require.NoError(t, w.Flush())
	require.Equal(t, uint32(1), w.Written())

	head, err := h.Bytes()
	require.NoError(t, err)
	require.Equal(t, append(head, 1, 2, 3, 4, 0x7f, 0x80), out.Bytes())
}
