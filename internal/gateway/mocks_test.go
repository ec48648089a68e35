package gateway_test

import (
	"errors"
	"sync"

	"notification-gateway/internal/auth"
)

// fakeConn records every push so tests can assert on delivery.
type fakeConn struct {
	id string

	mutex  sync.Mutex
	pushes []push
	closed bool
}

type push struct {
	event string
	data  interface{}
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string {
	return c.id
}

func (c *fakeConn) Send(event string, data interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	c.pushes = append(c.pushes, push{event: event, data: data})
	return nil
}

func (c *fakeConn) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.closed
}

func (c *fakeConn) sent() []push {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]push, len(c.pushes))
	copy(out, c.pushes)
	return out
}

// fakeVerifier accepts any token present in its subjects map.
type fakeVerifier struct {
	subjects map[string]string // token -> subject
}

func (v *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	subject, ok := v.subjects[token]
	if !ok {
		return nil, errors.New("token is malformed")
	}
	return &auth.Claims{Subject: subject}, nil
}
