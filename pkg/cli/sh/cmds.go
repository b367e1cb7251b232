package sh

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pinata.go/pkg/host/acq"
	"github.com/robotalks/pinata.go/pkg/host/client"
	"github.com/robotalks/pinata.go/pkg/host/inputs"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/telemetry"
)

// AESResult is the output of the aes command.
type AESResult struct {
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext"`
	Failure    bool   `json:"failure"`
}

// NewGenerator creates the input generator by name: random, mc or tvla.
// tvla is fixed-vs-random with the all-zero block as the fixed input.
func NewGenerator(name string, rng *rand.Rand) (inputs.Generator, error) {
	switch name {
	case "", "random":
		return inputs.Random(rng), nil
	case "mc":
		return inputs.MixColumns(rng), nil
	case "tvla":
		fixed := make([]byte, cryp.BlockSize)
		return inputs.NewFixedVsRandom(rng, fixed), nil
	}
	return nil, fmt.Errorf("unknown input generator %q", name)
}

// interruptible returns a context canceled on CtrlC.
func interruptible() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

var (
	// ConnectCmd connects a target.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TARGET]",
		Func: func(c *ishell.Context) {
			var target string
			if len(c.Args) > 0 {
				target = c.Args[0]
			}
			if err := ShellFrom(c).Connect(target); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current target.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// AESCmd runs one benchmark command.
	AESCmd = ishell.Cmd{
		Name: "aes",
		Help: "PLAINTEXT-HEX",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("plaintext expected"))
				return
			}
			plain, err := hex.DecodeString(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			resp, err := s.Client.AESBench(plain)
			if err != nil {
				s.CommandFailed(c, err)
				return
			}
			res := AESResult{
				Plaintext:  hex.EncodeToString(plain),
				Ciphertext: hex.EncodeToString(resp),
				Failure:    client.IsFailure(resp),
			}
			text := res.Ciphertext
			if res.Failure {
				text += " (failure)"
			}
			s.Print(c, &res, text)
		}),
	}

	// AcqCmd acquires a trace set.
	AcqCmd = ishell.Cmd{
		Name: "acq",
		Help: "COUNT FILE [random|mc|tvla]",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("count and file expected"))
				return
			}
			n, err := strconv.ParseUint(c.Args[0], 10, 32)
			if err != nil {
				c.Err(fmt.Errorf("invalid count: %v", err))
				return
			}
			var genName string
			if len(c.Args) > 2 {
				genName = c.Args[2]
			}
			gen, err := NewGenerator(genName, rand.New(rand.NewSource(time.Now().UnixNano())))
			if err != nil {
				c.Err(err)
				return
			}
			f, err := os.Create(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()

			s := ShellFrom(c)
			campaign := &acq.Campaign{
				Target: s.Client,
				Inputs: gen,
				Title:  fmt.Sprintf("pinata aes-128 %s", s.Target),
			}
			ctx, cancel := interruptible()
			defer cancel()
			res, err := campaign.Run(ctx, f, uint32(n))
			if err != nil {
				s.CommandFailed(c, err)
				return
			}
			s.Print(c, &res, fmt.Sprintf("%d traces, %d failures", res.Traces, res.Failures))
		}),
	}

	// WatchCmd prints telemetry events until interrupted.
	WatchCmd = ishell.Cmd{
		Name: "watch",
		Help: "[TARGET-ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			q, err := s.Config.NewQueue()
			if err != nil {
				c.Err(err)
				return
			}
			if q == nil {
				c.Err(fmt.Errorf("no MQTT broker configured"))
				return
			}
			if token := q.Connect(); token.Wait() && token.Error() != nil {
				c.Err(token.Error())
				return
			}
			defer q.Close()

			id := "+"
			if len(c.Args) > 0 {
				id = c.Args[0]
			}
			token := q.Sub(id+telemetry.EventsTopic, func(topic string, payload []byte) {
				evt, err := telemetry.Decode(payload)
				if err != nil {
					c.Err(fmt.Errorf("%s: %v", topic, err))
					return
				}
				s.Print(c, evt, fmt.Sprintf("%s %s", topic, evt.String()))
			})
			if token.Wait() && token.Error() != nil {
				c.Err(token.Error())
				return
			}
			ctx, cancel := interruptible()
			defer cancel()
			<-ctx.Done()
		},
	}
)
