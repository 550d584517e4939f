package repository

import (
	"context"

	"ai-interview-simulator/internal/domain/model"
)

// SessionStore is the sole owner of mutable session state. Implementations
// hand out deep copies only; no caller may hold a live reference into the
// store.
//
// Update must apply the mutator as one atomic unit per session id: two
// concurrent updates on the same id are serialized, and a mutator error
// leaves the stored session untouched. Distinct ids must not contend beyond
// the map access itself.
type SessionStore interface {
	// Create stores a new session under its id.
	// Returns domain.ErrAlreadyExists if the id is taken.
	Create(ctx context.Context, s *model.InterviewSession) error

	// Get returns a snapshot of the session, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*model.InterviewSession, error)

	// Update applies mutate to the stored session atomically and returns a
	// snapshot of the result. The mutator runs on a scratch copy; its error
	// aborts the update with no visible change.
	Update(ctx context.Context, id string, mutate func(*model.InterviewSession) error) (*model.InterviewSession, error)
}
