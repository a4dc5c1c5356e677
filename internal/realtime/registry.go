package realtime

import "sync"

// Registry maps live connection ids to the user that owns them.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]uint
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]uint)}
}

func (r *Registry) Register(connID string, userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[connID] = userID
}

func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, connID)
}

// ConnectionsFor returns a snapshot of the connection ids owned by userID.
func (r *Registry) ConnectionsFor(userID uint) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for connID, owner := range r.conns {
		if owner == userID {
			ids = append(ids, connID)
		}
	}
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
