package client

import "sync"

type Tokens struct {
	UserID       string `json:"uid"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStore keeps the session between requests. Clear is called when the
// session can no longer be refreshed.
type TokenStore interface {
	Tokens() (Tokens, bool)
	Save(tokens Tokens)
	Clear()
}

type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens Tokens
	set    bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Tokens() (Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.set
}

func (s *MemoryTokenStore) Save(tokens Tokens) {
	s.mu.Lock()
	s.tokens = tokens
	s.set = true
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.set = false
	s.mu.Unlock()
}
