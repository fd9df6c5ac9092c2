// Package client provides the TCP client for the Strand wire protocol.
package client

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/strandkv/strand/internal/resp"
)

const readChunkSize = 4096

// Client is a single-connection Strand client. It is not safe for
// concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	buf     []byte
	chunk   []byte
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request I/O deadline. Zero disables deadlines.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for the given server address. The connection is
// established lazily on the first call to Do.
func New(addr string, opts ...Option) *Client {
	c := &Client{
		addr:  addr,
		chunk: make([]byte, readChunkSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the server.
func (c *Client) Connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Do sends one command and returns the server's reply.
func (c *Client) Do(args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("empty command")
	}
	if err := c.Connect(); err != nil {
		return resp.Value{}, err
	}

	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.NewBulkString([]byte(a))
	}

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}

	if _, err := c.conn.Write(resp.Encode(resp.NewArray(elems...))); err != nil {
		c.Close()
		return resp.Value{}, fmt.Errorf("write: %w", err)
	}

	return c.readReply()
}

func (c *Client) readReply() (resp.Value, error) {
	c.buf = c.buf[:0]
	for {
		n, err := c.conn.Read(c.chunk)
		if n > 0 {
			c.buf = append(c.buf, c.chunk[:n]...)
			value, _, derr := resp.Decode(c.buf)
			if derr == nil {
				return value, nil
			}
			if !errors.Is(derr, resp.ErrIncomplete) {
				c.Close()
				return resp.Value{}, fmt.Errorf("bad reply: %w", derr)
			}
		}
		if err != nil {
			c.Close()
			return resp.Value{}, fmt.Errorf("read: %w", err)
		}
	}
}
