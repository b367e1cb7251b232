// Package dispatch provides the target command dispatcher.
package dispatch

// The target reads a single opcode byte from the link, runs the handler
// registered for it to completion and returns to idle before the next
// opcode is read. There is no framing: each handler knows the size of its
// request payload and always answers with a response of fixed size.
//
// Producer: host tooling
// Consumer: target
