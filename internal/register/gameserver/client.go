package gameserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	dErrors "github.com/ustwan/tzr-host-api-sub001/pkg/domain-errors"
)

// The legacy server commits a user only after it receives a complete frame
// and writes its own ack, so retrying an attempt that failed before any
// response is safe even though the protocol itself is not idempotent.

const (
	// maxReplySize bounds how much of the server reply is read. The legacy
	// server never sends more than a short XML fragment.
	maxReplySize = 4096

	replyOK  = "<OK"
	replyErr = "<ERR"
)

// Config tunes the client. Zero values are replaced with the legacy
// production defaults.
type Config struct {
	DialTimeout time.Duration // per-attempt connect budget (default 10s)
	ReadTimeout time.Duration // per-attempt reply budget (default 10s)
	Attempts    int           // total attempts including the first (default 3)
	BackoffStep time.Duration // delay before retry n is n*BackoffStep (default 500ms)
}

func (c Config) withDefaults() Config {
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.BackoffStep == 0 {
		c.BackoffStep = 500 * time.Millisecond
	}
	return c
}

// Client speaks the NUL-framed ADDUSER protocol to the legacy game server.
// Connections are ephemeral, one per attempt; the server does not support
// multiplexing.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient constructs a game-server client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{cfg: cfg.withDefaults(), logger: logger}
}

// RegisterUser sends an ADDUSER frame and interprets the reply.
//
// Transport failures (refused connection, timeout, empty reply) are retried
// up to the configured attempt budget with a linear backoff. A protocol-level
// <ERR reply is terminal and never retried. The returned error carries the
// domain code of the last attempt.
func (c *Client) RegisterUser(ctx context.Context, host string, port int, login, encodedPassword string, gender int) error {
	frame := buildFrame(login, encodedPassword, gender)
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		if attempt > 1 {
			// Delay before retry n is n-1 steps (0.5s, then 1.0s).
			delay := time.Duration(attempt-1) * c.cfg.BackoffStep
			select {
			case <-ctx.Done():
				return dErrors.Wrap(ctx.Err(), dErrors.CodeGameServerTimeout, "registration cancelled")
			case <-time.After(delay):
			}
		}

		err := c.attempt(ctx, addr, frame)
		if err == nil {
			return nil
		}
		if dErrors.HasCode(err, dErrors.CodeGameServerError) {
			// The server answered; retrying would duplicate the command.
			return err
		}
		lastErr = err
		c.logger.WarnContext(ctx, "game server attempt failed",
			"attempt", attempt,
			"addr", addr,
			"error", err,
		)
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, addr string, frame []byte) error {
	dialer := net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classifyDialError(err)
	}
	defer conn.Close() //nolint:errcheck // read side already consumed

	if _, err := conn.Write(frame); err != nil {
		return dErrors.Wrap(err, dErrors.CodeGameServerUnreachable, "write frame")
	}

	reply, err := c.readReply(conn)
	if err != nil {
		return err
	}
	return interpretReply(reply)
}

// readReply performs a single bounded read, mirroring the legacy client: the
// server's ack fits one TCP segment, and waiting for a terminator from a
// server that never sends one would stall the whole read budget. The reply
// is trimmed at the first NUL when present.
func (c *Client) readReply(conn net.Conn) ([]byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeGameServerUnreachable, "set read deadline")
	}

	buf := make([]byte, maxReplySize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			reply := buf[:n]
			if i := bytes.IndexByte(reply, 0); i >= 0 {
				reply = reply[:i]
			}
			return reply, nil
		}
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				return nil, dErrors.Wrap(err, dErrors.CodeGameServerTimeout, "read reply")
			}
			return nil, dErrors.New(dErrors.CodeGameServerNoResponse, "game server closed connection without reply")
		}
		// n == 0 with a nil error: spurious wakeup, read again.
	}
}

func interpretReply(reply []byte) error {
	if len(reply) == 0 {
		return dErrors.New(dErrors.CodeGameServerNoResponse, "empty reply from game server")
	}

	text := strings.ToValidUTF8(string(reply), "�")
	switch {
	case strings.HasPrefix(text, replyOK):
		return nil
	case strings.HasPrefix(text, replyErr):
		return dErrors.New(dErrors.CodeGameServerError, text)
	default:
		// Legacy lenient behavior: anything else the server says counts
		// as an ack.
		return nil
	}
}

func classifyDialError(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return dErrors.Wrap(err, dErrors.CodeGameServerTimeout, "dial game server")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeGameServerTimeout, "dial game server")
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return dErrors.Wrap(err, dErrors.CodeGameServerUnreachable, "game server refused connection")
	}
	return dErrors.Wrap(err, dErrors.CodeGameServerUnreachable, "dial game server")
}

// buildFrame renders the ADDUSER command exactly as the legacy server parses
// it: attribute order, the synthetic email placeholder, and the trailing NUL
// are all load-bearing.
func buildFrame(login, encodedPassword string, gender int) []byte {
	cmd := fmt.Sprintf(`<ADDUSER l="%s" p="%s" g="%d" m="test@test.ru"/>`, login, encodedPassword, gender)
	return append([]byte(cmd), 0x00)
}
