package hub

import (
	"sync"
)

// Groups is the multicast-group registry: a named group per pole that
// connections join, used to target commands at a specific edge gateway. It is
// modeled explicitly rather than leaning on transport-level rooms so the hub
// runs atop any bidirectional channel implementation.
type Groups struct {
	mu     sync.RWMutex
	groups map[string]map[string]Conn
	byConn map[string]map[string]struct{}
}

// NewGroups creates an empty group registry.
func NewGroups() *Groups {
	return &Groups{
		groups: make(map[string]map[string]Conn),
		byConn: make(map[string]map[string]struct{}),
	}
}

// Join adds conn to the named group. Repeats are no-ops.
func (g *Groups) Join(group string, conn Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.groups[group]
	if !ok {
		members = make(map[string]Conn)
		g.groups[group] = members
	}

	members[conn.ID()] = conn

	joined, ok := g.byConn[conn.ID()]
	if !ok {
		joined = make(map[string]struct{})
		g.byConn[conn.ID()] = joined
	}

	joined[group] = struct{}{}
}

// Leave removes a connection from one group.
func (g *Groups) Leave(group, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.leaveLocked(group, connID)
}

// LeaveAll removes a connection from every group it joined.
func (g *Groups) LeaveAll(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for group := range g.byConn[connID] {
		g.leaveLocked(group, connID)
	}
}

func (g *Groups) leaveLocked(group, connID string) {
	if members, ok := g.groups[group]; ok {
		delete(members, connID)

		if len(members) == 0 {
			delete(g.groups, group)
		}
	}

	if joined, ok := g.byConn[connID]; ok {
		delete(joined, group)

		if len(joined) == 0 {
			delete(g.byConn, connID)
		}
	}
}

// Members returns the current connections of a group.
func (g *Groups) Members(group string) []Conn {
	g.mu.RLock()
	defer g.mu.RUnlock()

	members := g.groups[group]
	conns := make([]Conn, 0, len(members))

	for _, c := range members {
		conns = append(conns, c)
	}

	return conns
}

// Broadcast sends one event to every member of a group and returns the
// number of connections reached. Send failures are skipped; a dead
// connection is reaped by its own read loop.
func (g *Groups) Broadcast(group, event string, data interface{}) int {
	reached := 0

	for _, c := range g.Members(group) {
		if err := c.Send(event, data); err == nil {
			reached++
		}
	}

	return reached
}
