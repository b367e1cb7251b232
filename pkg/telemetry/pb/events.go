// Package pb holds the telemetry wire schema, see events.proto.
package pb

import (
	proto "github.com/golang/protobuf/proto"
)

// CommandEvent reports a command processed by the target.
type CommandEvent struct {
	TargetId             string   `protobuf:"bytes,1,opt,name=target_id,json=targetId,proto3" json:"target_id,omitempty"`
	Seq                  uint64   `protobuf:"varint,2,opt,name=seq,proto3" json:"seq,omitempty"`
	Opcode               uint32   `protobuf:"varint,3,opt,name=opcode,proto3" json:"opcode,omitempty"`
	Success              bool     `protobuf:"varint,4,opt,name=success,proto3" json:"success,omitempty"`
	Repeats              uint32   `protobuf:"varint,5,opt,name=repeats,proto3" json:"repeats,omitempty"`
	DurationNs           int64    `protobuf:"varint,6,opt,name=duration_ns,json=durationNs,proto3" json:"duration_ns,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

// Reset implements proto.Message.
func (m *CommandEvent) Reset() { *m = CommandEvent{} }

// String implements proto.Message.
func (m *CommandEvent) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*CommandEvent) ProtoMessage() {}

func init() {
	proto.RegisterType((*CommandEvent)(nil), "pinata.v1.CommandEvent")
}
