package hub

import (
	"sync"
)

// SubscriptionRegistry tracks which connections belong to which topic
// groups. Membership is many-to-many and mutated from connection lifecycle
// callbacks that fire concurrently with request handling, so every
// operation takes the lock. The registry owns this state exclusively.
type SubscriptionRegistry struct {
	mu     sync.RWMutex
	groups map[string]map[string]struct{}
}

// NewSubscriptionRegistry creates an empty registry
func NewSubscriptionRegistry() *SubscriptionRegistry {
	return &SubscriptionRegistry{
		groups: make(map[string]map[string]struct{}),
	}
}

// Join adds a connection to a group
func (r *SubscriptionRegistry) Join(connectionID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		members = make(map[string]struct{})
		r.groups[group] = members
	}
	members[connectionID] = struct{}{}
}

// Leave removes a connection from a group
func (r *SubscriptionRegistry) Leave(connectionID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.groups[group]; ok {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(r.groups, group)
		}
	}
}

// LeaveAll removes a connection from every group. Called on disconnect;
// afterwards the connection appears in no member set, so no delivery is
// attempted against a closed connection.
func (r *SubscriptionRegistry) LeaveAll(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for group, members := range r.groups {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(r.groups, group)
		}
	}
}

// Members returns a snapshot of a group's connection ids
func (r *SubscriptionRegistry) Members(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groups[group]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

// Contains reports whether a connection is a member of a group
func (r *SubscriptionRegistry) Contains(connectionID, group string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groups[group]
	if !ok {
		return false
	}
	_, ok = members[connectionID]
	return ok
}

// GroupsOf returns every group a connection belongs to
func (r *SubscriptionRegistry) GroupsOf(connectionID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for group, members := range r.groups {
		if _, ok := members[connectionID]; ok {
			names = append(names, group)
		}
	}
	return names
}
