package server

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/pipeline"
)

// Session is the dashboard's state container: the active configuration and
// the variation set derived from it. It is injected into every handler
// rather than living in a package-level singleton, and a mutex serializes
// the interaction handlers the way the original single-threaded dashboard
// serialized widget events.
type Session struct {
	mu     sync.Mutex
	id     string
	cfg    config.Configuration
	result *pipeline.Result
	seed   uint64 // fixed seed for reproducible sessions; 0 = random per run
	runner *pipeline.Runner
	count  int
	thumbW int
}

// NewSession creates a session starting from the default configuration.
func NewSession(runner *pipeline.Runner, seed uint64, count, thumbWidth int) *Session {
	return &Session{
		id:     uuid.NewString(),
		cfg:    config.Default(),
		seed:   seed,
		runner: runner,
		count:  count,
		thumbW: thumbWidth,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns a copy of the active configuration.
func (s *Session) Config() config.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Stops derives the gradient for the active configuration.
func (s *Session) Stops() ([]palette.RGB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Stops()
}

// SetConfig replaces the active configuration and regenerates the variation
// set. The configuration must already be validated; an invalid one is
// rejected before any session state changes.
func (s *Session) SetConfig(ctx context.Context, cfg config.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg.Clone()
	s.result = nil
	if len(s.cfg.Words) == 0 {
		// Storable but not renderable; variations stay empty until words
		// arrive.
		return nil
	}
	return s.regenerate(ctx)
}

// Regenerate produces a fresh variation set for the active configuration.
func (s *Session) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerate(ctx)
}

// regenerate must be called with s.mu held.
func (s *Session) regenerate(ctx context.Context) error {
	result, err := s.runner.Execute(ctx, pipeline.Options{
		Config:       s.cfg.Clone(),
		Seed:         s.seed,
		Count:        s.count,
		PreviewWidth: s.thumbW,
	})
	if err != nil {
		return err
	}
	s.result = result
	return nil
}

// Ensure renders the variation set if it doesn't exist yet, then returns it.
func (s *Session) Ensure(ctx context.Context) (*pipeline.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		if err := s.regenerate(ctx); err != nil {
			return nil, err
		}
	}
	return s.result, nil
}

// Result returns the current variation set, which may be nil before the
// first render or after the words were cleared.
func (s *Session) Result() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
