// Package trs writes Inspector trace set (.trs) files.
package trs

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Header tags.
const (
	TagNumTraces    byte = 0x41
	TagNumSamples   byte = 0x42
	TagSampleCoding byte = 0x43
	TagDataLength   byte = 0x44
	TagGlobalTitle  byte = 0x46
	TagDescription  byte = 0x47
	TagXLabel       byte = 0x49
	TagYLabel       byte = 0x4a
	TagXScale       byte = 0x4b
	TagYScale       byte = 0x4c
	TagScopeRange   byte = 0x55
	TagCoupling     byte = 0x56
	TagScopeID      byte = 0x59
	TagTraceBlock   byte = 0x5f
)

// Sample coding bits.
const (
	SampleInt   byte = 0x00
	SampleFloat byte = 0x10
)

// Header describes the trace set.
type Header struct {
	NumTraces   uint32
	NumSamples  uint32
	SampleSize  byte // 1, 2 or 4
	FloatSample bool
	DataLength  uint16
	Title       string
	Description string
	XLabel      string
	YLabel      string
	XScale      float32
	YScale      float32
	ScopeRange  float32
	Coupling    uint32
	ScopeID     string
}

var (
	// ErrSampleSize indicates an unsupported sample size.
	ErrSampleSize = errors.New("sample size must be 1, 2 or 4")
	// ErrTraceShape indicates a trace not matching the header.
	ErrTraceShape = errors.New("trace does not match header")
)

// SampleCoding returns the SC byte.
func (h *Header) SampleCoding() byte {
	sc := SampleInt | h.SampleSize
	if h.FloatSample {
		sc |= SampleFloat
	}
	return sc
}

// Bytes encodes the header as TLV objects, terminated by TagTraceBlock.
func (h *Header) Bytes() ([]byte, error) {
	switch h.SampleSize {
	case 1, 2, 4:
	default:
		return nil, ErrSampleSize
	}
	var b []byte
	b = appendObject(b, TagNumTraces, u32(h.NumTraces))
	b = appendObject(b, TagNumSamples, u32(h.NumSamples))
	b = appendObject(b, TagSampleCoding, []byte{h.SampleCoding()})
	b = appendObject(b, TagDataLength, u16(h.DataLength))
	for _, s := range []struct {
		tag byte
		val string
	}{
		{TagGlobalTitle, h.Title},
		{TagDescription, h.Description},
		{TagXLabel, h.XLabel},
		{TagYLabel, h.YLabel},
	} {
		if s.val != "" {
			b = appendObject(b, s.tag, []byte(s.val))
		}
	}
	if h.XScale != 0 {
		b = appendObject(b, TagXScale, f32(h.XScale))
	}
	if h.YScale != 0 {
		b = appendObject(b, TagYScale, f32(h.YScale))
	}
	if h.ScopeRange != 0 {
		b = appendObject(b, TagScopeRange, f32(h.ScopeRange))
	}
	b = appendObject(b, TagCoupling, u32(h.Coupling))
	if h.ScopeID != "" {
		b = appendObject(b, TagScopeID, []byte(h.ScopeID))
	}
	return appendObject(b, TagTraceBlock, nil), nil
}

// appendObject appends a TLV object. Lengths below 128 take one byte;
// longer ones are 0x84 followed by a little-endian uint32.
func appendObject(b []byte, tag byte, val []byte) []byte {
	b = append(b, tag)
	if l := len(val); l < 0x80 {
		b = append(b, byte(l))
	} else {
		b = append(b, 0x84)
		b = append(b, u32(uint32(l))...)
	}
	return append(b, val...)
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func f32(v float32) []byte {
	return u32(math.Float32bits(v))
}

// Writer writes a header followed by traces.
type Writer struct {
	Header Header

	w       *bufio.Writer
	written uint32
}

// NewWriter writes the header to w.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	head, err := h.Bytes()
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(w)
	if _, err = bw.Write(head); err != nil {
		return nil, err
	}
	return &Writer{Header: h, w: bw}, nil
}

// WriteTrace writes one trace: its data bytes, then raw samples already
// coded with the header's sample size.
func (w *Writer) WriteTrace(data, samples []byte) error {
	if len(data) != int(w.Header.DataLength) ||
		len(samples) != int(w.Header.NumSamples)*int(w.Header.SampleSize) {
		return fmt.Errorf("%w: data %d samples %d", ErrTraceShape, len(data), len(samples))
	}
	if w.written >= w.Header.NumTraces {
		return fmt.Errorf("%w: more than %d traces", ErrTraceShape, w.Header.NumTraces)
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}
	if _, err := w.w.Write(samples); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written returns the number of traces written.
func (w *Writer) Written() uint32 {
	return w.written
}

// Flush flushes buffered traces.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
