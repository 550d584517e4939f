// File: internal/infra/store/memory/memory_store.go
package memory

import (
	"context"
	"sync"

	"ai-interview-simulator/internal/domain"
	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*Store)(nil)

// Store keeps all sessions in process memory for the process lifetime.
// Each session carries its own mutex, so updates serialize per id while
// distinct ids only share the short map-guard critical section.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu sync.Mutex
	s  *model.InterviewSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (st *Store) Create(ctx context.Context, s *model.InterviewSession) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.ID]; ok {
		return domain.ErrAlreadyExists
	}
	st.sessions[s.ID] = &entry{s: s.Clone()}
	return nil
}

func (st *Store) Get(ctx context.Context, id string) (*model.InterviewSession, error) {
	e, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.Clone(), nil
}

// Update runs the mutator on a scratch copy under the per-session lock and
// swaps it in only on success, so a failed mutation is never observable.
func (st *Store) Update(ctx context.Context, id string, mutate func(*model.InterviewSession) error) (*model.InterviewSession, error) {
	e, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	scratch := e.s.Clone()
	if err := mutate(scratch); err != nil {
		return nil, err
	}
	e.s = scratch
	return scratch.Clone(), nil
}

func (st *Store) lookup(id string) (*entry, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}
