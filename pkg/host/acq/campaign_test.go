package acq

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pinata.go/pkg/host/inputs"
	"github.com/robotalks/pinata.go/pkg/host/trs"
)

type benchFunc func(plain []byte) ([]byte, error)

func (f benchFunc) AESBench(plain []byte) ([]byte, error) { return f(plain) }

type fakeSampler struct{ captures int }

func (s *fakeSampler) NumSamples() uint32 { return 4 }
func (s *fakeSampler) SampleSize() byte   { return 1 }
func (s *fakeSampler) Capture(run func() error) ([]byte, error) {
	s.captures++
	if err := run(); err != nil {
		return nil, err
	}
	return []byte{1, 2, 3, 4}, nil
}

func counter() inputs.Generator {
	var n byte
	return inputs.GeneratorFunc(func() []byte {
		n++
		return bytes.Repeat([]byte{n}, 16)
	})
}

func invert(plain []byte) ([]byte, error) {
	resp := make([]byte, len(plain))
	for i, b := range plain {
		resp[i] = ^b
	}
	return resp, nil
}

func headerLen(t *testing.T, h trs.Header) int {
	b, err := h.Bytes()
	require.NoError(t, err)
	return len(b)
}

func TestCampaign(t *testing.T) {
	var out bytes.Buffer
	c := &Campaign{Target: benchFunc(invert), Inputs: counter(), Title: "t"}
	res, err := c.Run(context.Background(), &out, 3)
	require.NoError(t, err)
	require.Equal(t, Result{Traces: 3}, res)

	head := headerLen(t, trs.Header{NumTraces: 3, SampleSize: 1, DataLength: DataLength, Title: "t"})
	body := out.Bytes()[head:]
	require.Len(t, body, 3*DataLength)
	require.Equal(t, bytes.Repeat([]byte{2}, 16), body[DataLength:DataLength+16])
	require.Equal(t, bytes.Repeat([]byte{0xfd}, 16), body[DataLength+16:2*DataLength])
}

func TestCampaignSampler(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSampler{}
	c := &Campaign{Target: benchFunc(invert), Inputs: counter(), Sampler: s}
	_, err := c.Run(context.Background(), &out, 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.captures)

	head := headerLen(t, trs.Header{NumTraces: 2, NumSamples: 4, SampleSize: 1, DataLength: DataLength})
	require.Len(t, out.Bytes(), head+2*(DataLength+4))
}

func TestCampaignFailures(t *testing.T) {
	var out bytes.Buffer
	zero := benchFunc(func(plain []byte) ([]byte, error) { return make([]byte, 16), nil })
	c := &Campaign{Target: zero, Inputs: counter()}
	res, err := c.Run(context.Background(), &out, 2)
	require.NoError(t, err)
	require.Equal(t, Result{Traces: 2, Failures: 2}, res)
}

func TestCampaignErrors(t *testing.T) {
	linkDown := errors.New("link down")
	c := &Campaign{
		Target: benchFunc(func([]byte) ([]byte, error) { return nil, linkDown }),
		Inputs: counter(),
	}
	res, err := c.Run(context.Background(), &bytes.Buffer{}, 2)
	require.True(t, errors.Is(err, linkDown))
	require.Zero(t, res.Traces)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Target = benchFunc(invert)
	_, err = c.Run(ctx, &bytes.Buffer{}, 2)
	require.Equal(t, context.Canceled, err)
}
