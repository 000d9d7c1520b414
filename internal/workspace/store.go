package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store owns every live workspace, keyed by session ID.
type Store struct {
	gen     Generator
	log     logrus.FieldLogger
	timeout time.Duration
	ttl     time.Duration
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	workspaces map[string]*Workspace
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout bounds each generation run. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithIdleTTL sets how long an untouched workspace is kept. Without it
// workspaces live until Close.
func WithIdleTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. Runs started from it are cancelled by
// Close.
func NewStore(gen Generator, log logrus.FieldLogger, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		gen:        gen,
		log:        log,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
		workspaces: make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the workspace for id, creating it when missing. Idle
// workspaces past the TTL are evicted first.
func (s *Store) Get(id string) *Workspace {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, w := range s.workspaces {
		if s.ttl > 0 && key != id && w.idle(now, s.ttl) {
			delete(s.workspaces, key)
			s.log.WithField("workspace", key).Debug("evicted idle workspace")
		}
	}

	w, ok := s.workspaces[id]
	if !ok {
		w = &Workspace{id: id, store: s}
		s.workspaces[id] = w
	}
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
	return w
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Close cancels every run in flight and waits for them to return.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// begin registers a run unless the store is closed.
func (s *Store) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Store) runContext() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(s.ctx, s.timeout)
	}
	return context.WithCancel(s.ctx)
}
