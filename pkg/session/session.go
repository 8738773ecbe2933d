// Package session persists interactive view state between invocations.
//
// A [ViewState] records what a viewer was looking at: the drilled root, the
// treemap isolate stack, the disclosed nodes and the focused node. Stores
// keep one state per session id with automatic expiration:
//   - [FileStore]: JSON files in the user config directory (CLI)
//   - [RedisStore]: Redis-backed storage for multi-instance deployments
//
// # Usage
//
//	store, err := session.NewFileStore("")  // ~/.config/hierview/sessions/
//
//	st := session.New("treemap", session.DefaultTTL)
//	st.RootID = "src"
//	store.Set(ctx, st)
//
//	st, err = store.Get(ctx, id)
//	if st == nil {
//	    // Not found or expired
//	}
package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for ids that are not UUIDs.
	ErrInvalidID = errors.New("invalid session id")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 7 * 24 * time.Hour

// ViewState is the persisted state of one viewer.
type ViewState struct {
	ID      string `json:"id"`
	VizType string `json:"viz_type"`

	// RootID is the drilled display root; empty means the tree root.
	RootID string `json:"root_id,omitempty"`

	// Isolated is the treemap isolate stack, outermost first.
	Isolated []string `json:"isolated,omitempty"`

	// Expanded lists disclosed node ids. Nil means every node.
	Expanded []string `json:"expanded,omitempty"`

	Focus string `json:"focus,omitempty"`

	// Source identifies the document the state belongs to.
	Source string `json:"source,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty state with a fresh id.
func New(vizType string, ttl time.Duration) *ViewState {
	now := time.Now()
	return &ViewState{
		ID:        uuid.NewString(),
		VizType:   vizType,
		ExpiresAt: now.Add(ttl),
		UpdatedAt: now,
	}
}

// IsExpired returns true if the state has expired.
func (s *ViewState) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the expiry by ttl from now.
func (s *ViewState) Touch(ttl time.Duration) {
	s.UpdatedAt = time.Now()
	s.ExpiresAt = s.UpdatedAt.Add(ttl)
}

// IsolatedID returns the innermost isolated node, or "".
func (s *ViewState) IsolatedID() string {
	if len(s.Isolated) == 0 {
		return ""
	}
	return s.Isolated[len(s.Isolated)-1]
}

// Clone returns a deep copy.
func (s *ViewState) Clone() *ViewState {
	c := *s
	c.Isolated = slices.Clone(s.Isolated)
	c.Expanded = slices.Clone(s.Expanded)
	return &c
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// Store is the interface for view state backends.
type Store interface {
	// Get retrieves a state by id.
	// Returns nil, nil if it doesn't exist or has expired.
	Get(ctx context.Context, id string) (*ViewState, error)

	// Set stores a state until its ExpiresAt.
	Set(ctx context.Context, st *ViewState) error

	// Delete removes a state.
	Delete(ctx context.Context, id string) error

	// List returns the ids of unexpired states.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend.
	Close() error
}
