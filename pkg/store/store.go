// Package store holds the canonical resume document. It is the only writer of
// document state: callers describe changes as mutator functions that run against
// a scratch copy, and the result is repaired before it replaces the snapshot.
package store

import (
	"slices"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/nikogura/resume-builder/pkg/resume"
	"go.uber.org/zap"
)

// Change describes a committed document update.
type Change struct {
	Document *resume.Data
	// Structural updates seed or reshape the document without user content.
	// They leave the dirty flag alone and should not trigger re-derivation.
	Structural bool
	// Replaced is set when the whole document was swapped (load, import, sample).
	Replaced bool
}

// Listener receives committed changes.
type Listener func(Change)

// UpdateOption tunes a single Update call.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	structural bool
}

// Structural marks an update as a structural seed.
func Structural() (opt UpdateOption) {
	opt = func(o *updateOptions) {
		o.structural = true
	}
	return opt
}

// Store owns the current document snapshot and its dirty flag.
type Store struct {
	mu        sync.Mutex
	doc       *resume.Data
	dirty     bool
	listeners map[int]Listener
	nextID    int
	logger    *zap.Logger
}

// New creates a store seeded with a normalized copy of initial.
func New(initial *resume.Data, logger *zap.Logger) (s *Store) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s = &Store{
		doc:       resume.Normalize(initial),
		listeners: map[int]Listener{},
		logger:    logger.With(zap.String("module", "store")),
	}
	return s
}

// Snapshot returns an independent copy of the current document.
func (s *Store) Snapshot() (doc *resume.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc = s.doc.Clone()
	return doc
}

// Dirty reports whether user content changed since the last MarkClean.
func (s *Store) Dirty() (dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty = s.dirty
	return dirty
}

// MarkClean clears the dirty flag.
func (s *Store) MarkClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Update runs mutator against a scratch copy of the document, repairs the result
// and commits it. It reports whether the document changed.
func (s *Store) Update(mutator func(draft *resume.Data), opts ...UpdateOption) (changed bool) {
	if mutator == nil {
		return changed
	}

	options := updateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	s.mu.Lock()
	draft := s.doc.Clone()
	mutator(draft)
	resume.Repair(draft)

	if cmp.Equal(s.doc, draft) {
		s.mu.Unlock()
		return changed
	}

	// the mutator may have kept a reference to draft
	s.doc = draft.Clone()
	if !options.structural {
		s.dirty = true
	}
	change := Change{Document: draft.Clone(), Structural: options.structural}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	changed = true
	s.logger.Debug("document updated", zap.Bool("structural", options.structural))
	notify(listeners, change)
	return changed
}

// Replace installs a whole document, normalizing a copy of it.
func (s *Store) Replace(doc *resume.Data) {
	next := resume.Normalize(doc)

	s.mu.Lock()
	s.doc = next
	s.dirty = true
	change := Change{Document: next.Clone(), Replaced: true}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug("document replaced")
	notify(listeners, change)
}

// Subscribe registers fn for committed changes and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	unsubscribe = func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
	return unsubscribe
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() (out []Listener) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func notify(listeners []Listener, change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
