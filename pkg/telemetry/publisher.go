// Package telemetry reports processed commands to an MQTT broker.
package telemetry

import (
	"context"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/dispatch"
	"github.com/robotalks/pinata.go/pkg/telemetry/pb"
)

// EventsTopic is the topic suffix for command events.
const EventsTopic = "/events"

// Publishing is the part of mqtt.Queue used by Publisher.
type Publishing interface {
	Pub(topic string, payload []byte) paho.Token
}

// Publisher implements dispatch.Observer. Events are queued and published
// from Run so the command loop never waits for the broker.
type Publisher struct {
	Queue    Publishing
	TargetID string

	eventCh chan dispatch.Event
}

// DefaultBacklog is the number of events queued before dropping.
const DefaultBacklog = 64

// NewPublisher creates a Publisher.
func NewPublisher(q Publishing, targetID string) *Publisher {
	return &Publisher{
		Queue:    q,
		TargetID: targetID,
		eventCh:  make(chan dispatch.Event, DefaultBacklog),
	}
}

// Topic returns the events topic of the target.
func (p *Publisher) Topic() string {
	return p.TargetID + EventsTopic
}

// CommandDone implements dispatch.Observer.
func (p *Publisher) CommandDone(evt dispatch.Event) {
	select {
	case p.eventCh <- evt:
	default:
		glog.V(1).Infof("telemetry backlog full, event %d dropped", evt.Seq)
	}
}

// Run implements Runnable.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-p.eventCh:
			payload, err := Encode(p.TargetID, evt)
			if err != nil {
				glog.Errorf("encode event %d: %v", evt.Seq, err)
				continue
			}
			token := p.Queue.Pub(p.Topic(), payload)
			if token.Wait() && token.Error() != nil {
				glog.Warningf("publish event %d: %v", evt.Seq, token.Error())
			}
		}
	}
}

// Encode serializes a command event.
func Encode(targetID string, evt dispatch.Event) ([]byte, error) {
	return proto.Marshal(&pb.CommandEvent{
		TargetId:   targetID,
		Seq:        evt.Seq,
		Opcode:     uint32(evt.Opcode),
		Success:    evt.Report.Outcome == cryp.Success,
		Repeats:    uint32(evt.Report.Repeats),
		DurationNs: int64(evt.Duration),
	})
}

// Decode parses a payload published by Publisher.
func Decode(payload []byte) (*pb.CommandEvent, error) {
	var msg pb.CommandEvent
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
