package form

import "sync"

// SessionStore はブラウジングセッション相当の一時ストレージ。
// ページビューを跨いで生存し、セッション終了とともに消える。
// 永続化もサーバ側での追跡もしない。
type SessionStore interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Delete(key string)
}

// MemorySession はプロセス内の SessionStore 実装。
type MemorySession struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemorySession は空のセッションストアを生成する。
func NewMemorySession() *MemorySession {
	return &MemorySession{values: make(map[string]string)}
}

func (s *MemorySession) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemorySession) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySession) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
