// Package session holds the operator's bearer token and decides whether the
// console is signed in.
package session

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Credentials is the single holder of the current bearer token. API clients
// read it on every request; the gate writes it on login, logout and invalidation.
type Credentials struct {
	mu     sync.RWMutex
	store  TokenStore
	token  string
	loaded bool
}

// NewCredentials creates a holder backed by store. A nil store keeps the
// token in memory.
func NewCredentials(store TokenStore) *Credentials {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Credentials{store: store}
}

// Token returns the current token, trimmed. It is read from the store on
// first use.
func (c *Credentials) Token() string {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.token
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		token, err := c.store.Load()
		if err != nil {
			log.WithError(err).Warn("Discarding unreadable session token")
			_ = c.store.Clear()
			token = ""
		}
		c.token = strings.TrimSpace(token)
		c.loaded = true
	}
	return c.token
}

// Set replaces the token. Whitespace is trimmed before it is stored.
func (c *Credentials) Set(token string) error {
	token = strings.TrimSpace(token)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.loaded = true
	return c.store.Save(token)
}

// Clear forgets the token.
func (c *Credentials) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.loaded = true
	return c.store.Clear()
}
