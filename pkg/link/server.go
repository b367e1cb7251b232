// Package link attaches byte links (TCP, websocket) to a target dispatcher.
package link

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/pinata.go/pkg/framework"
	"github.com/robotalks/pinata.go/pkg/target/dispatch"
	"github.com/robotalks/pinata.go/pkg/target/rxbuf"
)

// WebsocketPath is the HTTP path of the websocket link.
const WebsocketPath = "/link"

// Server hands links to the dispatcher one at a time. A link attached
// while another is being served waits until the first one detaches.
type Server struct {
	Dispatcher *dispatch.Dispatcher

	lock sync.Mutex
}

// NewServer creates a Server.
func NewServer(d *dispatch.Dispatcher) *Server {
	return &Server{Dispatcher: d}
}

// ServeLink serves commands from conn until it's closed or ctx is done.
// A link closed by the peer is not an error.
func (s *Server) ServeLink(ctx context.Context, name string, conn io.ReadWriteCloser) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	glog.Infof("link %s attached", name)
	err := framework.RunWithContextCloser(ctx, conn, func() error {
		return s.Dispatcher.Serve(ctx, conn)
	})
	var le *rxbuf.LinkError
	if errors.As(err, &le) && errors.Is(le.Err, io.EOF) {
		err = nil
	}
	if err != nil && err != context.Canceled {
		glog.Warningf("link %s dropped: %v", name, err)
	} else {
		glog.Infof("link %s detached", name)
	}
	return err
}

// TCPListener accepts links over TCP.
type TCPListener struct {
	Addr   string
	Server *Server
}

// Name implements Named.
func (l *TCPListener) Name() string {
	return "tcp:" + l.Addr
}

// Run implements Runnable.
func (l *TCPListener) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return err
	}
	glog.Infof("listening tcp %s", ln.Addr())
	return l.Serve(ctx, ln)
}

// Serve accepts links from ln and serves them in order.
func (l *TCPListener) Serve(ctx context.Context, ln net.Listener) error {
	return framework.RunWithContextCloser(ctx, ln, func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			err = l.Server.ServeLink(ctx, conn.RemoteAddr().String(), conn)
			if err == context.Canceled {
				return err
			}
		}
	})
}

// WebsocketListener accepts links over websocket at WebsocketPath.
type WebsocketListener struct {
	Addr   string
	Server *Server
}

// Name implements Named.
func (l *WebsocketListener) Name() string {
	return "ws:" + l.Addr
}

// Handler creates the HTTP handler serving links with ctx.
func (l *WebsocketListener) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(WebsocketPath, websocket.Handler(func(ws *websocket.Conn) {
		ws.PayloadType = websocket.BinaryFrame
		l.Server.ServeLink(ctx, ws.Request().RemoteAddr, ws)
	}))
	return mux
}

// Run implements Runnable.
func (l *WebsocketListener) Run(ctx context.Context) error {
	srv := &http.Server{Addr: l.Addr, Handler: l.Handler(ctx)}
	glog.Infof("listening websocket %s%s", l.Addr, WebsocketPath)
	err := framework.RunWithContextCloser(ctx, srv, srv.ListenAndServe)
	if err == http.ErrServerClosed {
		err = ctx.Err()
	}
	return err
}
