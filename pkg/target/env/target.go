package env

import (
	"context"
	"log"

	"github.com/golang/glog"

	fx "github.com/robotalks/pinata.go/pkg/framework"
	"github.com/robotalks/pinata.go/pkg/link"
	"github.com/robotalks/pinata.go/pkg/target/bench"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/dispatch"
	"github.com/robotalks/pinata.go/pkg/telemetry"
	"github.com/robotalks/pinata.go/pkg/telemetry/mqtt"
)

// Target is an assembled target ready to run.
type Target struct {
	Config     *Config
	Dispatcher *dispatch.Dispatcher
	Server     *link.Server
	Trigger    *cryp.CountingTrigger
	Publisher  *telemetry.Publisher
	Runnables  []fx.Runnable
}

// NewTarget builds the target around the given peripheral.
func (c *Config) NewTarget(p cryp.Peripheral) (*Target, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	key, _ := c.KeyBytes()
	ctx, err := dispatch.NewContext(key, c.BufferSize)
	if err != nil {
		return nil, err
	}

	t := &Target{Config: c, Trigger: &cryp.CountingTrigger{}}
	if c.Trigger == TriggerPerCall {
		p = &cryp.Triggered{Peripheral: p, Trigger: t.Trigger}
	}
	drv := bench.NewDriver(cryp.NewAdapter(p))
	if c.Trigger == TriggerPerCommand {
		drv.Window = t.Trigger
	}
	t.Dispatcher = dispatch.New(ctx).Handle(dispatch.OpAESBench, dispatch.NewAESBench(drv))
	t.Server = link.NewServer(t.Dispatcher)

	if c.Listen != "" {
		t.Runnables = append(t.Runnables, &link.TCPListener{Addr: c.Listen, Server: t.Server})
	}
	if c.WebsocketListen != "" {
		t.Runnables = append(t.Runnables, &link.WebsocketListener{Addr: c.WebsocketListen, Server: t.Server})
	}
	if c.MQTTBrokerURL != "" {
		q, err := mqtt.NewQueueFromURL(c.MQTTBrokerURL)
		if err != nil {
			return nil, err
		}
		t.Publisher = telemetry.NewPublisher(q, c.ID)
		t.Dispatcher.Observer = t.Publisher
		t.Runnables = append(t.Runnables, fx.NamedRun("telemetry", fx.RunFunc(func(ctx context.Context) error {
			glog.Infof("telemetry to %s topic %s%s", c.MQTTBrokerURL, q.TopicPrefix, t.Publisher.Topic())
			q.Connect()
			return fx.RunWithContextCloser(ctx, q, func() error {
				return t.Publisher.Run(ctx)
			})
		})))
	}
	return t, nil
}

// MustNewTarget builds the target and fails on error.
func (c *Config) MustNewTarget(p cryp.Peripheral) *Target {
	t, err := c.NewTarget(p)
	if err != nil {
		log.Fatalln(err)
	}
	return t
}

// Run starts all runnables and stops them together.
func (t *Target) Run(ctx context.Context) error {
	return fx.NewRunnerWith(ctx).HandleSignals().Go(t.Runnables...).Wait()
}
