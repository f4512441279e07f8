// Package session models one interactive edit session over an IR dump:
// the raw text, its segmented pass list, the selected pass, and the
// debounced reparse loop that feeds the browser view.
//
// The parser runs synchronously and cannot be interrupted mid-scan;
// cancellation is achieved by superseding: every edit bumps a
// generation counter, and a debounce timer that fires for a stale
// generation discards its result instead of publishing it.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"irview/internal/graph"
	"irview/internal/ir"
	"irview/internal/segment"
)

// DefaultDebounce is the quiescence interval before a reparse runs.
const DefaultDebounce = 300 * time.Millisecond

// ErrPassOutOfRange is returned when a caller selects a pass index
// outside the current pass list. This is a caller-side bounds error,
// not a parser failure.
var ErrPassOutOfRange = errors.New("session: pass index out of range")

// Snapshot is one published parse result: the pass list, the selected
// pass index, and the graph built from the selected pass.
type Snapshot struct {
	Passes   []ir.Pass `json:"passes"`
	Selected int       `json:"selected"`
	Graph    *ir.Graph `json:"graph"`
}

// Session owns the text of one dump edit session. All methods are safe
// for concurrent use; publishes happen on the debounce timer goroutine.
type Session struct {
	mu       sync.Mutex
	passes   []ir.Pass
	selected int
	gen      uint64
	timer    *time.Timer

	cache    *Cache
	debounce time.Duration
	publish  func(Snapshot)
}

// New creates a session around the initial dump text. publish is called
// with a fresh Snapshot after every debounced reparse; it may be nil
// for pull-only use via Current.
func New(text string, cache *Cache, debounce time.Duration, publish func(Snapshot)) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Session{
		passes:   segment.Split(text),
		cache:    cache,
		debounce: debounce,
		publish:  publish,
	}
	return s
}

// SetText applies an edit. Text that contains pass-boundary markers
// fully discards and replaces the pass list; text without markers
// mutates only the currently selected pass's content in place. Either
// way a debounced reparse is scheduled, superseding any pending one.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	if segment.HasBoundary(text) {
		s.passes = segment.Split(text)
		if s.selected >= len(s.passes) {
			s.selected = 0
		}
	} else {
		s.passes[s.selected].Content = text
	}
	s.scheduleLocked()
	s.mu.Unlock()
}

// Select switches the selected pass and schedules a reparse. Returns
// ErrPassOutOfRange when the index is outside the pass list.
func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.passes) {
		return fmt.Errorf("%w: %d of %d", ErrPassOutOfRange, index, len(s.passes))
	}
	s.selected = index
	s.scheduleLocked()
	return nil
}

// Current parses the selected pass synchronously (through the cache)
// and returns the resulting snapshot. It does not touch the debounce
// timer.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Passes returns a copy of the current pass list.
func (s *Session) Passes() []ir.Pass {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ir.Pass, len(s.passes))
	copy(out, s.passes)
	return out
}

// Close cancels any pending reparse.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// scheduleLocked (re)arms the debounce timer. The generation counter
// guards against a timer that already fired but has not yet taken the
// lock: its snapshot is stale and must not be published.
func (s *Session) scheduleLocked() {
	if s.publish == nil {
		return
	}
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(snap)
	})
}

func (s *Session) snapshotLocked() Snapshot {
	passes := make([]ir.Pass, len(s.passes))
	copy(passes, s.passes)

	var g *ir.Graph
	if s.cache != nil {
		g = s.cache.Build(passes[s.selected].Content)
	} else {
		g = graph.Build(passes[s.selected].Content)
	}
	return Snapshot{Passes: passes, Selected: s.selected, Graph: g}
}
