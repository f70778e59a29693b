// Package rcon runs single console commands against a Minecraft server over
// the RCON protocol.
//
// Every call dials a fresh session, sends exactly one command and closes the
// session before returning. Sessions are never cached or retried; a failed
// dial or send yields an empty reply, which callers must treat as an unknown
// outcome.
package rcon

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gorcon/rcon"
	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/constants"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/logging"
)

// Executor sends one command and returns the raw reply text.
type Executor interface {
	Execute(ctx context.Context, command string) string
}

// Conn is an open RCON session.
type Conn interface {
	Execute(command string) (string, error)
	Close() error
}

// DialFunc opens a session to address authenticated with password.
type DialFunc func(ctx context.Context, address, password string, timeout time.Duration) (Conn, error)

// Compile-time interface check.
var _ Executor = (*Client)(nil)

// Client is the production Executor.
type Client struct {
	address  string
	password string
	timeout  time.Duration
	dial     DialFunc
	logger   *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds dialing and each read/write of the session.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithDialer replaces the network dialer, mostly for tests.
func WithDialer(dial DialFunc) Option {
	return func(c *Client) {
		c.dial = dial
	}
}

// WithLogger sets the logger used when no logger is carried by the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a Client for host:port.
func New(host string, port int, password string, opts ...Option) *Client {
	if host == "" {
		host = constants.DefaultRCONHost
	}
	if port <= 0 {
		port = constants.DefaultRCONPort
	}
	c := &Client{
		address:  net.JoinHostPort(host, strconv.Itoa(port)),
		password: password,
		timeout:  constants.DefaultRCONTimeout,
		dial:     dialRCON,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Address returns host:port of the server.
func (c *Client) Address() string {
	return c.address
}

// Execute runs command in a new session and returns the reply, or "" when the
// session could not be opened or the command could not be sent.
func (c *Client) Execute(ctx context.Context, command string) string {
	reply, err := c.Run(ctx, command)
	if err != nil {
		c.log(ctx).Error().Err(err).Str("command", command).Msg("RCON command failed")
		return ""
	}
	return reply
}

// Run is Execute with the transport error returned instead of logged.
func (c *Client) Run(ctx context.Context, command string) (reply string, err error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewTransportError("dial", c.address, command, err)
	}

	conn, err := c.dial(ctx, c.address, c.password, c.timeout)
	if err != nil {
		return "", errors.NewTransportError("dial", c.address, "", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.log(ctx).Debug().Err(cerr).Str("address", c.address).Msg("Closing RCON session")
		}
	}()

	reply, err = conn.Execute(command)
	if err != nil {
		return "", errors.NewTransportError("execute", c.address, command, err)
	}

	c.log(ctx).Debug().
		Str("command", command).
		Str("reply", reply).
		Msg("RCON command executed")
	return reply, nil
}

func (c *Client) log(ctx context.Context) *zerolog.Logger {
	if c.logger != nil && logging.FromContext(ctx) == logging.Default() {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// dialRCON opens a real session with gorcon. The deadline applies to every
// read and write on the session.
func dialRCON(_ context.Context, address, password string, timeout time.Duration) (Conn, error) {
	conn, err := rcon.Dial(address, password,
		rcon.SetDialTimeout(timeout),
		rcon.SetDeadline(timeout),
	)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
