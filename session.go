// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Session carries the state of one user across generations:
// the thread of the last successful generation and the current artifact.
//
// A session runs at most one generation at a time.
// It is safe for concurrent use.
type Session struct {
	ID string

	busy atomic.Bool

	mu       sync.RWMutex
	threadID string
	artifact *Artifact
}

// NewSession creates a session with a random ID.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// ThreadID returns the thread of the last successful generation, or empty if none.
func (s *Session) ThreadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.threadID
}

// Artifact returns the current artifact and whether one has been generated.
func (s *Session) Artifact() (Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.artifact == nil {
		return Artifact{}, false
	}

	return *s.artifact, true
}

// Edit replaces the current artifact text with a manual edit.
func (s *Session) Edit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		return ErrNoArtifact
	}
	s.artifact = &Artifact{Text: text}

	return nil
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) acquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *Session) release() {
	s.busy.Store(false)
}

func (s *Session) complete(threadID string, artifact Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threadID = threadID
	s.artifact = &artifact
}
