package gateway

import (
	"sync"

	"notification-gateway/internal/domain"
)

// UserRoom names the per-subject broadcast group.
func UserRoom(userID string) string {
	return "user:" + userID
}

// Registry tracks which connections belong to which user and which rooms a
// connection has joined. It is owned exclusively by the Gateway; every
// mutation is serialized behind one mutex so that removing the last
// connection and deleting the user's key is a single atomic step.
type Registry struct {
	mutex     sync.RWMutex
	userConns map[string]map[string]domain.Connection // userID -> connID -> conn
	rooms     map[string]map[string]domain.Connection // room -> connID -> conn
	connRooms map[string]map[string]struct{}          // connID -> joined rooms
}

func NewRegistry() *Registry {
	return &Registry{
		userConns: make(map[string]map[string]domain.Connection),
		rooms:     make(map[string]map[string]domain.Connection),
		connRooms: make(map[string]map[string]struct{}),
	}
}

func (r *Registry) Add(userID string, conn domain.Connection) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.userConns[userID] == nil {
		r.userConns[userID] = make(map[string]domain.Connection)
	}
	r.userConns[userID][conn.ID()] = conn
}

// Remove drops the connection from the user's set and from every room it
// joined. A user's key is deleted the instant its set becomes empty; the map
// never holds an empty set. Safe to call more than once for the same
// connection.
func (r *Registry) Remove(userID, connID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	conns, exists := r.userConns[userID]
	if !exists {
		return false
	}
	if _, exists := conns[connID]; !exists {
		return false
	}

	delete(conns, connID)
	if len(conns) == 0 {
		delete(r.userConns, userID)
	}

	for room := range r.connRooms[connID] {
		if members, ok := r.rooms[room]; ok {
			delete(members, connID)
			if len(members) == 0 {
				delete(r.rooms, room)
			}
		}
	}
	delete(r.connRooms, connID)

	return true
}

// JoinRoom is idempotent; re-joining an already joined room is a no-op.
func (r *Registry) JoinRoom(room string, conn domain.Connection) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.rooms[room] == nil {
		r.rooms[room] = make(map[string]domain.Connection)
	}
	r.rooms[room][conn.ID()] = conn

	if r.connRooms[conn.ID()] == nil {
		r.connRooms[conn.ID()] = make(map[string]struct{})
	}
	r.connRooms[conn.ID()][room] = struct{}{}
}

func (r *Registry) RoomConnections(room string) []domain.Connection {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	members, exists := r.rooms[room]
	if !exists {
		return nil
	}

	conns := make([]domain.Connection, 0, len(members))
	for _, conn := range members {
		conns = append(conns, conn)
	}
	return conns
}

func (r *Registry) AllConnections() []domain.Connection {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var conns []domain.Connection
	for _, userConns := range r.userConns {
		for _, conn := range userConns {
			conns = append(conns, conn)
		}
	}
	return conns
}

func (r *Registry) IsUserOnline(userID string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.userConns[userID]) > 0
}

// OnlineUsersCount counts distinct users, not connections.
func (r *Registry) OnlineUsersCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.userConns)
}

func (r *Registry) ConnectionCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := 0
	for _, conns := range r.userConns {
		total += len(conns)
	}
	return total
}
