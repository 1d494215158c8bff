package ws

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

type client struct {
	conn      *websocket.Conn
	writeMu   *sync.Mutex
	closeOnce *sync.Once
	logger    *zap.Logger
}

func Dial(ctx context.Context, url string, clientUuid string, logger *zap.Logger) (*client, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, clientUuid)
	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, errors.WithMessagef(err, "dial '%s' (status %s)", url, resp.Status)
		}
		return nil, errors.WithMessagef(err, "dial '%s'", url)
	}
	logger.Info("connected", zap.String("url", url))
	return newClient(conn, logger), nil
}

func newClient(conn *websocket.Conn, logger *zap.Logger) *client {
	return &client{
		conn:      conn,
		writeMu:   &sync.Mutex{},
		closeOnce: &sync.Once{},
		logger:    logger,
	}
}

func (c *client) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

func (c *client) ReadMessage() ([]byte, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		switch {
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway),
			errors.Is(err, net.ErrClosed):
			return nil, domain.ErrConnectionClosed
		case err != nil:
			return nil, errors.WithMessage(err, "websocket conn read message")
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		return data, nil
	}
}

func (c *client) Close() {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("close websocket conn", zap.Error(err))
		}
	})
}
