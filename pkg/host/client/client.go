// Package client issues benchmark commands to a target over a byte link.
package client

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/websocket"

	"github.com/robotalks/pinata.go/pkg/target/dispatch"
)

var (
	// ErrPayloadSize indicates the plaintext is not one block.
	ErrPayloadSize = fmt.Errorf("plaintext must be %d bytes", dispatch.AESBenchSize)
	// ErrUnsupportedScheme indicates the target URL scheme is unknown.
	ErrUnsupportedScheme = errors.New("unsupported target scheme")
	// ErrLinkBroken indicates an earlier round trip failed and the link was
	// closed. A late response may still be in flight, so the client must
	// reconnect.
	ErrLinkBroken = errors.New("link broken, reconnect required")
)

// DefaultTimeout bounds one command round trip.
const DefaultTimeout = 5 * time.Second

type deadliner interface {
	SetDeadline(time.Time) error
}

// Client sends commands on a link. Commands are sequential: the target
// processes one command to completion before reading the next opcode.
type Client struct {
	Link    io.ReadWriter
	Timeout time.Duration

	broken error
}

// New wraps a link.
func New(link io.ReadWriter) *Client {
	return &Client{Link: link, Timeout: DefaultTimeout}
}

// Dial connects to target, either host:port, tcp://host:port or
// ws://host:port/link.
func Dial(target string, timeout time.Duration) (*Client, error) {
	if !strings.Contains(target, "://") {
		target = "tcp://" + target
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	var link io.ReadWriter
	switch u.Scheme {
	case "tcp":
		if link, err = net.DialTimeout("tcp", u.Host, timeout); err != nil {
			return nil, err
		}
	case "ws", "wss":
		origin := "http://" + u.Host + "/"
		ws, err := websocket.Dial(u.String(), "", origin)
		if err != nil {
			return nil, err
		}
		ws.PayloadType = websocket.BinaryFrame
		link = ws
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	c := New(link)
	if timeout > 0 {
		c.Timeout = timeout
	}
	return c, nil
}

// Close implements io.Closer.
func (c *Client) Close() error {
	if closer, ok := c.Link.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AESBench runs the repeated encryption benchmark on plain and returns the
// 16-byte response. An all-zero response means the peripheral failed.
func (c *Client) AESBench(plain []byte) ([]byte, error) {
	if len(plain) != dispatch.AESBenchSize {
		return nil, ErrPayloadSize
	}
	req := make([]byte, 0, 1+dispatch.AESBenchSize)
	req = append(req, dispatch.OpAESBench)
	req = append(req, plain...)
	resp := make([]byte, dispatch.AESBenchSize)
	if err := c.roundTrip(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Err returns the failure which broke the link, nil if it is usable.
func (c *Client) Err() error {
	return c.broken
}

func (c *Client) roundTrip(req, resp []byte) error {
	if c.broken != nil {
		return fmt.Errorf("%w: %v", ErrLinkBroken, c.broken)
	}
	if err := c.exchange(req, resp); err != nil {
		c.broken = err
		c.Close()
		return err
	}
	return nil
}

func (c *Client) exchange(req, resp []byte) error {
	if d, ok := c.Link.(deadliner); ok && c.Timeout > 0 {
		if err := d.SetDeadline(time.Now().Add(c.Timeout)); err != nil {
			return err
		}
		defer d.SetDeadline(time.Time{})
	}
	if _, err := c.Link.Write(req); err != nil {
		return err
	}
	_, err := io.ReadFull(c.Link, resp)
	return err
}

// IsFailure reports whether resp is the peripheral failure response.
func IsFailure(resp []byte) bool {
	for _, b := range resp {
		if b != 0 {
			return false
		}
	}
	return true
}
