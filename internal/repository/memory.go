package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memorySession struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

// NewMemorySessionRepository keeps sessions in process memory. It is used when
// redis is disabled.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]entity.Session),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = *session

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
