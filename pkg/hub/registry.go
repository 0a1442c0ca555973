/*
 * Copyright 2026 onStreetCloud Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hub

import (
	"sort"
	"sync"
)

type identityEntry struct {
	identity Identity
	conns    map[string]Conn
}

// Registry is the single owner of the identity-to-connections map. An
// identity is present if and only if at least one of its connections is still
// open; the raw maps never escape the guarded calls.
type Registry struct {
	mu sync.RWMutex
	// identity key -> entry. One connection may carry several identities:
	// a pole socket announces the pole itself and each of its cameras.
	identities map[string]*identityEntry
	// conn id -> identity keys held by that connection.
	byConn map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		identities: make(map[string]*identityEntry),
		byConn:     make(map[string]map[string]struct{}),
	}
}

// Register records that conn represents identity. Repeats are no-ops.
func (r *Registry) Register(conn Conn, identity Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identity.Key()

	entry, ok := r.identities[key]
	if !ok {
		entry = &identityEntry{identity: identity, conns: make(map[string]Conn)}
		r.identities[key] = entry
	}

	entry.conns[conn.ID()] = conn

	keys, ok := r.byConn[conn.ID()]
	if !ok {
		keys = make(map[string]struct{})
		r.byConn[conn.ID()] = keys
	}

	keys[key] = struct{}{}
}

// Deregister removes one identity from one connection. It reports whether
// that was the identity's last remaining connection. Unknown pairs are no-ops.
func (r *Registry) Deregister(connID string, identity Identity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identity.Key()

	entry, ok := r.identities[key]
	if !ok {
		return false
	}

	if _, held := entry.conns[connID]; !held {
		return false
	}

	delete(entry.conns, connID)

	if keys, ok := r.byConn[connID]; ok {
		delete(keys, key)

		if len(keys) == 0 {
			delete(r.byConn, connID)
		}
	}

	if len(entry.conns) == 0 {
		delete(r.identities, key)
		return true
	}

	return false
}

// DropConn removes a connection from every identity it represents and
// returns the identities for which it was the last remaining connection.
// Called on transport-level disconnect; afterwards the registry retains no
// trace of the connection.
func (r *Registry) DropConn(connID string) []Identity {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, ok := r.byConn[connID]
	if !ok {
		return nil
	}

	var gone []Identity

	for key := range keys {
		entry, ok := r.identities[key]
		if !ok {
			continue
		}

		delete(entry.conns, connID)

		if len(entry.conns) == 0 {
			gone = append(gone, entry.identity)
			delete(r.identities, key)
		}
	}

	delete(r.byConn, connID)

	sort.Slice(gone, func(i, j int) bool { return gone[i].Key() < gone[j].Key() })

	return gone
}

// Online reports whether the identity currently has at least one connection.
func (r *Registry) Online(identity Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.identities[identity.Key()]

	return ok
}

// OnlinePoles returns every pole identity with a live connection.
func (r *Registry) OnlinePoles() []PoleIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var poles []PoleIdentity

	for _, entry := range r.identities {
		if p, ok := entry.identity.(PoleIdentity); ok {
			poles = append(poles, p)
		}
	}

	return poles
}

// OnlineCameras returns every camera identity of one pole with a live
// connection.
func (r *Registry) OnlineCameras(poleCode string) []CameraIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cameras []CameraIdentity

	for _, entry := range r.identities {
		if c, ok := entry.identity.(CameraIdentity); ok && c.PoleCode == poleCode {
			cameras = append(cameras, c)
		}
	}

	return cameras
}

// AllOnlineCameras returns every camera identity with a live connection.
func (r *Registry) AllOnlineCameras() []CameraIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cameras []CameraIdentity

	for _, entry := range r.identities {
		if c, ok := entry.identity.(CameraIdentity); ok {
			cameras = append(cameras, c)
		}
	}

	return cameras
}
