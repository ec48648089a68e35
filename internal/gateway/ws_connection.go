package gateway

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"notification-gateway/internal/domain"
	"notification-gateway/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 256
)

var errConnectionClosed = errors.New("connection closed")

// wsConnection adapts a gorilla websocket to domain.Connection. Writes go
// through a buffered channel drained by a single write pump, since the
// underlying connection allows only one concurrent writer.
type wsConnection struct {
	id   string
	conn *websocket.Conn
	log  logger.Logger

	send   chan []byte
	closed bool
	mutex  sync.Mutex
	once   sync.Once
}

func newWSConnection(conn *websocket.Conn, log logger.Logger) *wsConnection {
	return &wsConnection{
		id:   uuid.NewString(),
		conn: conn,
		log:  log,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *wsConnection) ID() string {
	return c.id
}

func (c *wsConnection) Send(event string, data interface{}) error {
	payload, err := json.Marshal(domain.Push{Event: event, Data: data})
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return errConnectionClosed
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *wsConnection) Close() error {
	c.mutex.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mutex.Unlock()

	var err error
	c.once.Do(func() {
		err = c.conn.Close()
	})
	return err
}

// writePump drains the send channel onto the socket and keeps the connection
// alive with periodic pings.
func (c *wsConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
