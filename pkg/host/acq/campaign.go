// Package acq runs acquisition campaigns against a target and records
// input/output pairs into a trace set.
package acq

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/pinata.go/pkg/host/inputs"
	"github.com/robotalks/pinata.go/pkg/host/trs"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
)

// DataLength is the per-trace data: plaintext followed by the response.
const DataLength = 2 * cryp.BlockSize

// Bencher issues one benchmark command.
type Bencher interface {
	AESBench(plain []byte) ([]byte, error)
}

// Sampler captures the samples of one command, e.g. from a scope armed on
// the trigger. Nil means no scope is attached.
type Sampler interface {
	NumSamples() uint32
	SampleSize() byte
	Capture(run func() error) ([]byte, error)
}

// Campaign describes an acquisition.
type Campaign struct {
	Target  Bencher
	Inputs  inputs.Generator
	Sampler Sampler
	Title   string
}

// Result summarizes a finished campaign.
type Result struct {
	Traces   uint32
	Failures uint32
}

// Run acquires n traces into w. ctx is checked between commands.
func (c *Campaign) Run(ctx context.Context, w io.Writer, n uint32) (Result, error) {
	var res Result
	h := trs.Header{
		NumTraces:  n,
		SampleSize: 1,
		DataLength: DataLength,
		Title:      c.Title,
	}
	if c.Sampler != nil {
		h.NumSamples, h.SampleSize = c.Sampler.NumSamples(), c.Sampler.SampleSize()
	}
	tw, err := trs.NewWriter(w, h)
	if err != nil {
		return res, err
	}
	for res.Traces < n {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		plain := c.Inputs.Next()
		var resp, samples []byte
		run := func() (err error) {
			resp, err = c.Target.AESBench(plain)
			return
		}
		if c.Sampler != nil {
			samples, err = c.Sampler.Capture(run)
		} else {
			err = run()
		}
		if err != nil {
			return res, fmt.Errorf("trace %d: %w", res.Traces, err)
		}
		if isZero(resp) {
			res.Failures++
			glog.Warningf("trace %d: peripheral failure response", res.Traces)
		}
		data := make([]byte, 0, DataLength)
		data = append(append(data, plain...), resp...)
		if err := tw.WriteTrace(data, samples); err != nil {
			return res, err
		}
		res.Traces++
	}
	return res, tw.Flush()
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
