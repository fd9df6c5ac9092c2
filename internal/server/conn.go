package server

import (
	"errors"
	"io"
	"net"

	"github.com/strandkv/strand/internal/resp"
	"github.com/strandkv/strand/internal/telemetry/logger"
)

// readChunkSize bounds a single read from the socket.
const readChunkSize = 4096

// conn drives one client connection.
type conn struct {
	id      string
	netConn net.Conn
	srv     *Server
	log     logger.Logger

	// buf accumulates raw bytes until they form one complete request.
	buf []byte
}

// run loops read -> decode -> dispatch -> reply until the peer closes,
// the stream turns malformed, or I/O fails. Exactly one request is
// processed per read cycle, and the buffer is cleared after each reply,
// so bytes pipelined behind a complete request are discarded.
func (c *conn) run() {
	defer c.netConn.Close()

	chunk := make([]byte, readChunkSize)
	for {
		n, err := c.netConn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Debug("read failed", "error", err)
			}
			return
		}
		if len(c.buf) == 0 {
			continue
		}

		value, _, err := resp.Decode(c.buf)
		if errors.Is(err, resp.ErrIncomplete) {
			continue
		}
		if err != nil {
			// Protocol-fatal: the stream cannot recover.
			c.srv.metrics.ProtocolErrors.Inc()
			c.log.Warn("malformed request, closing connection", "error", err)
			return
		}

		reply := c.srv.dispatch(c, value)
		if _, err := c.netConn.Write(resp.Encode(reply)); err != nil {
			c.log.Debug("write failed", "error", err)
			return
		}
		c.buf = c.buf[:0]
	}
}

// remoteIP returns the peer address without the port.
func (c *conn) remoteIP() string {
	host, _, err := net.SplitHostPort(c.netConn.RemoteAddr().String())
	if err != nil {
		return c.netConn.RemoteAddr().String()
	}
	return host
}
