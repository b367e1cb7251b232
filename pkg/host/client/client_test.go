package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pinata.go/pkg/target/bench"
	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/dispatch"
)

func unhex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func startTarget(t *testing.T, key []byte, p cryp.Peripheral) (*Client, func()) {
	c, err := dispatch.NewContext(key, dispatch.DefaultBufferSize)
	require.NoError(t, err)
	d := dispatch.New(c).Handle(dispatch.OpAESBench,
		dispatch.NewAESBench(bench.NewDriver(cryp.NewAdapter(p))))
	host, target := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Serve(ctx, target) }()
	return New(host), func() {
		cancel()
		host.Close()
		target.Close()
		<-done
	}
}

func TestAESBench(t *testing.T) {
	key := unhex(t, "000102030405060708090a0b0c0d0e0f")
	client, stop := startTarget(t, key, cryp.NewSoft())
	defer stop()

	for i := 0; i < 3; i++ {
		resp, err := client.AESBench(unhex(t, "00112233445566778899aabbccddeeff"))
		require.NoError(t, err)
		require.Equal(t, unhex(t, "69c4e0d86a7b0430d8cdb78070b4c55a"), resp)
		require.False(t, IsFailure(resp))
	}
}

func TestAESBenchFailure(t *testing.T) {
	client, stop := startTarget(t, make([]byte, 16), cryp.CryptFunc(
		func(cryp.Mode, []byte, int, []byte, []byte) error { return errors.New("fault") }))
	defer stop()

	resp, err := client.AESBench(bytes.Repeat([]byte{0x31}, 16))
	require.NoError(t, err)
	require.Equal(t, make([]byte, 16), resp)
	require.True(t, IsFailure(resp))
}

func TestAESBenchPayloadSize(t *testing.T) {
	_, err := New(nil).AESBench(make([]byte, 15))
	require.Equal(t, ErrPayloadSize, err)
}

func TestDialUnsupported(t *testing.T) {
	_, err := Dial("serial:///dev/ttyUSB0", 0)
	require.True(t, errors.Is(err, ErrUnsupportedScheme))
}

// slowTarget answers each 17-byte request with 16 bytes of the request
// index, delaying the first answer.
func slowTarget(t *testing.T, delay time.Duration) (string, func()) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		req := make([]byte, 1+dispatch.AESBenchSize)
		for n := byte(1); ; n++ {
			if _, err := io.ReadFull(conn, req); err != nil {
				return
			}
			if n == 1 {
				time.Sleep(delay)
			}
			if _, err := conn.Write(bytes.Repeat([]byte{n}, dispatch.AESBenchSize)); err != nil {
				return
			}
		}
	}()
	return ln.Addr().String(), func() {
		ln.Close()
		<-done
	}
}

func TestAESBenchTimeoutBreaksLink(t *testing.T) {
	addr, stop := slowTarget(t, 150*time.Millisecond)
	defer stop()

	client, err := Dial(addr, 50*time.Millisecond)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.AESBench(bytes.Repeat([]byte{1}, 16))
	require.Error(t, err)
	require.Error(t, client.Err())

	time.Sleep(200 * time.Millisecond)
	resp, err := client.AESBench(bytes.Repeat([]byte{2}, 16))
	require.True(t, errors.Is(err, ErrLinkBroken))
	require.Nil(t, resp)
}

func TestAESBenchLinkReuse(t *testing.T) {
	addr, stop := slowTarget(t, 0)
	defer stop()

	client, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer client.Close()

	for n := byte(1); n <= 3; n++ {
		resp, err := client.AESBench(bytes.Repeat([]byte{n}, 16))
		require.NoError(t, err)
		require.Equal(t, bytes.Repeat([]byte{n}, 16), resp)
	}
	require.NoError(t, client.Err())
}
