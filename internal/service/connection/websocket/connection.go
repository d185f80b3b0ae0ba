// Package websocket implements connection.Connection over a websocket using
// the speech service's header-framed message format.
package websocket

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ai-conversation-transcriber/internal/observability/logging"
	"ai-conversation-transcriber/internal/service/connection"
)

// ErrConnectionClosed is returned by Send after Close.
var ErrConnectionClosed = errors.New("websocket connection closed")

// Header names used in message framing.
const (
	headerPath        = "Path"
	headerRequestID   = "X-RequestId"
	headerTimestamp   = "X-Timestamp"
	headerContentType = "Content-Type"
)

// Config holds websocket dial configuration.
type Config struct {
	Endpoint        string
	SubscriptionKey string
	ConnectionID    string
	DialTimeout     time.Duration
}

// Connection is a single, non-reconnecting websocket connection.
type Connection struct {
	conn    *websocket.Conn
	log     zerolog.Logger
	now     func() time.Time
	writeMu sync.Mutex
	once    sync.Once
	closed  bool
}

// Dial opens a websocket to the configured endpoint.
func Dial(ctx context.Context, cfg Config) (*Connection, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("speech endpoint is empty")
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.DialTimeout,
	}

	header := http.Header{}
	if cfg.SubscriptionKey != "" {
		header.Set("Ocp-Apim-Subscription-Key", cfg.SubscriptionKey)
	}
	if cfg.ConnectionID != "" {
		header.Set("X-ConnectionId", cfg.ConnectionID)
	}

	conn, _, err := dialer.DialContext(ctx, cfg.Endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("dial speech endpoint: %w", err)
	}

	return newConnection(conn, cfg.ConnectionID), nil
}

func newConnection(conn *websocket.Conn, connectionID string) *Connection {
	return &Connection{
		conn: conn,
		log: logging.WithComponent("websocket").With().
			Str("connectionId", connectionID).
			Logger(),
		now: time.Now,
	}
}

// Send frames msg and writes it to the websocket. Writes are serialized.
func (c *Connection) Send(ctx context.Context, msg *connection.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	var (
		frameType int
		frame     []byte
		err       error
	)
	switch msg.Type {
	case connection.BinaryMessage:
		frameType = websocket.BinaryMessage
		frame, err = EncodeBinary(msg, c.now())
	default:
		frameType = websocket.TextMessage
		frame = EncodeText(msg, c.now())
	}
	if err != nil {
		return err
	}

	if err := c.conn.WriteMessage(frameType, frame); err != nil {
		return fmt.Errorf("write %s message %q: %w", msg.Type, msg.Path, err)
	}

	c.log.Debug().
		Str("path", msg.Path).
		Str("requestId", msg.RequestID).
		Int("bytes", len(frame)).
		Msg("Message sent")
	return nil
}

// Close sends a close frame and closes the underlying connection. Idempotent.
func (c *Connection) Close() error {
	var err error
	c.once.Do(func() {
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		c.closed = true
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		err = c.conn.Close()
	})
	return err
}

// EncodeText frames a text message: CRLF-terminated headers, a blank line,
// then the body.
func EncodeText(msg *connection.Message, ts time.Time) []byte {
	var buf bytes.Buffer
	writeHeaders(&buf, msg, ts)
	buf.WriteString("\r\n")
	buf.Write(msg.Body)
	return buf.Bytes()
}

// EncodeBinary frames a binary message: a big-endian uint16 header length,
// the CRLF-terminated headers, then the body.
func EncodeBinary(msg *connection.Message, ts time.Time) ([]byte, error) {
	var headers bytes.Buffer
	writeHeaders(&headers, msg, ts)
	if headers.Len() > 0xFFFF {
		return nil, fmt.Errorf("binary message headers too large: %d bytes", headers.Len())
	}

	frame := make([]byte, 2, 2+headers.Len()+len(msg.Body))
	binary.BigEndian.PutUint16(frame, uint16(headers.Len()))
	frame = append(frame, headers.Bytes()...)
	frame = append(frame, msg.Body...)
	return frame, nil
}

func writeHeaders(buf *bytes.Buffer, msg *connection.Message, ts time.Time) {
	writeHeader(buf, headerPath, msg.Path)
	writeHeader(buf, headerRequestID, msg.RequestID)
	writeHeader(buf, headerTimestamp, ts.UTC().Format("2006-01-02T15:04:05.000Z"))
	if msg.ContentType != "" {
		writeHeader(buf, headerContentType, msg.ContentType)
	}
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
