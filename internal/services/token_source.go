package services

import "sync"

// TokenSource holds the session token the sync runner attaches to remote
// calls. It is injected explicitly wherever a token is needed; there is no
// package-level state.
type TokenSource struct {
	mu    sync.RWMutex
	token string
}

func NewTokenSource() *TokenSource {
	return &TokenSource{}
}

func (t *TokenSource) Set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

func (t *TokenSource) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *TokenSource) Clear() {
	t.Set("")
}
