package dispatch

import (
	"io"

	"github.com/robotalks/pinata.go/pkg/target/bench"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
)

// OpAESBench selects the repeated AES-128-ECB benchmark.
const OpAESBench byte = 0xCB

// AESBenchSize is the request and response payload size of OpAESBench.
const AESBenchSize = cryp.BlockSize

var zeroResponse [AESBenchSize]byte

// AESBench handles OpAESBench: 16 bytes of plaintext in, 16 bytes of
// ciphertext out, or 16 zero bytes when the last encryption failed.
type AESBench struct {
	Driver *bench.Driver
}

// NewAESBench creates the handler around a driver.
func NewAESBench(d *bench.Driver) *AESBench {
	return &AESBench{Driver: d}
}

// HandleCommand implements Handler.
func (h *AESBench) HandleCommand(c *Context, link io.ReadWriter) (Report, error) {
	buf := c.Buffer
	if err := buf.Fill(link, AESBenchSize); err != nil {
		return Report{}, err
	}
	if err := buf.ZeroRange(bench.StagingStart, buf.Len()); err != nil {
		return Report{}, err
	}
	outcome, err := h.Driver.Run(buf, c.Key[:])
	if err != nil {
		return Report{}, err
	}
	resp := zeroResponse[:]
	if outcome == cryp.Success {
		if resp, err = buf.Bytes(bench.StagingStart, bench.StagingEnd); err != nil {
			return Report{}, err
		}
	}
	if err = send(link, resp); err != nil {
		return Report{}, err
	}
	return Report{Outcome: outcome, Repeats: h.Driver.Repeat}, nil
}
