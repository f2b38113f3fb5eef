// Package sections owns the ordered list of active resume sections.
package sections

import (
	"slices"
	"sync"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/nikogura/resume-builder/pkg/store"
	"go.uber.org/zap"
)

// Documents is the slice of the document store the controller needs.
type Documents interface {
	Snapshot() *resume.Data
	Update(mutator func(draft *resume.Data), opts ...store.UpdateOption) bool
	Subscribe(fn store.Listener) (unsubscribe func())
}

// Controller is the authoritative active-section order.
type Controller struct {
	mu          sync.Mutex
	docs        Documents
	order       []string
	memory      map[string]int
	listeners   []func(order []string)
	unsubscribe func()
	logger      *zap.Logger
}

// NewController builds a controller for docs starting from initial. The initial
// order is sanitized; when nothing survives the document-derived order is used.
func NewController(docs Documents, initial []string, logger *zap.Logger) (c *Controller) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c = &Controller{
		docs:   docs,
		memory: map[string]int{},
		logger: logger.With(zap.String("module", "sections")),
	}
	c.setOrderLocked(Sanitize(initial, docs.Snapshot(), false))
	c.unsubscribe = docs.Subscribe(c.onDocumentChange)
	return c
}

// Close detaches the controller from the document store.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Order returns a copy of the current order.
func (c *Controller) Order() (order []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order = slices.Clone(c.order)
	return order
}

// Has reports whether key is active.
func (c *Controller) Has(key string) (ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok = slices.Contains(c.order, key)
	return ok
}

// OnChange registers fn to receive every new order.
func (c *Controller) OnChange(fn func(order []string)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Toggle shows or hides a section. A re-enabled section returns to the index it
// last held, clamped to the current length. Enabling an empty standard section
// seeds it with one blank item as a structural update.
func (c *Controller) Toggle(key string, enabled bool) {
	doc := c.docs.Snapshot()
	if !Known(key, doc) {
		c.logger.Debug("toggle ignored for unknown section", zap.String("key", key))
		return
	}

	c.mu.Lock()
	idx := slices.Index(c.order, key)
	if !enabled {
		if idx < 0 {
			c.mu.Unlock()
			return
		}
		next := slices.Delete(slices.Clone(c.order), idx, idx+1)
		c.commitAndUnlock(next)
		return
	}

	if idx >= 0 {
		c.mu.Unlock()
		return
	}

	pos := len(c.order)
	if remembered, ok := c.memory[key]; ok && remembered < pos {
		pos = max(remembered, 0)
	}
	next := slices.Insert(slices.Clone(c.order), pos, key)
	c.commitAndUnlock(next)

	section, isStandard := resume.Lookup(key)
	if isStandard && section.HasItems() && section.Count(doc) == 0 {
		c.docs.Update(func(draft *resume.Data) {
			resume.AddItem(draft, key)
		}, store.Structural())
	}
}

// Reorder replaces the order wholesale. next must be a permutation of the
// current order; anything else is ignored.
func (c *Controller) Reorder(next []string) {
	if next == nil {
		return
	}

	doc := c.docs.Snapshot()
	if !slices.Equal(Sanitize(next, doc, true), next) {
		c.logger.Debug("reorder ignored", zap.Strings("order", next))
		return
	}

	c.mu.Lock()
	if !isPermutation(c.order, next) {
		c.mu.Unlock()
		c.logger.Debug("reorder ignored, not a permutation of the active order", zap.Strings("order", next))
		return
	}
	if slices.Equal(c.order, next) {
		c.mu.Unlock()
		return
	}
	c.commitAndUnlock(slices.Clone(next))
}

// isPermutation reports whether next holds exactly the keys of order. next is
// known to be free of duplicates.
func isPermutation(order, next []string) (ok bool) {
	if len(order) != len(next) {
		return ok
	}
	for _, key := range order {
		if !slices.Contains(next, key) {
			return ok
		}
	}
	ok = true
	return ok
}

// AddCustomSection creates a custom section and appends it to the order.
func (c *Controller) AddCustomSection(title string) (id string) {
	section := resume.NewCustomSection(title)
	id = section.ID

	c.docs.Update(func(draft *resume.Data) {
		draft.CustomSections = append(draft.CustomSections, section)
	})

	key := resume.CustomKey(id)
	c.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(c.order), func(k string) bool { return k == key })
	next = append(next, key)
	c.commitAndUnlock(next)
	return id
}

// RemoveCustomSection drops a custom section from the order and then deletes it
// from the document. The key leaves the order first so reconciliation never sees
// a stale key, and removing the last active section leaves the order empty.
func (c *Controller) RemoveCustomSection(id string) {
	key := resume.CustomKey(id)
	c.mu.Lock()
	if slices.Contains(c.order, key) {
		next := slices.DeleteFunc(slices.Clone(c.order), func(k string) bool { return k == key })
		c.commitAndUnlock(next)
	} else {
		c.mu.Unlock()
	}

	c.docs.Update(func(draft *resume.Data) {
		if idx := draft.FindCustomSection(id); idx >= 0 {
			draft.CustomSections = slices.Delete(draft.CustomSections, idx, idx+1)
		}
	})
}

// Reset installs order after sanitizing it against the current document.
func (c *Controller) Reset(order []string) {
	next := Sanitize(order, c.docs.Snapshot(), false)
	c.mu.Lock()
	c.commitAndUnlock(next)
}

// Rederive replaces the order with the one derived from the document's content.
func (c *Controller) Rederive() {
	next := Derive(c.docs.Snapshot())
	c.mu.Lock()
	c.commitAndUnlock(next)
}

// Canonical returns the current keys in registry order.
func (c *Controller) Canonical() (canonical []string) {
	doc := c.docs.Snapshot()
	canonical = Canonical(c.Order(), doc)
	return canonical
}

// onDocumentChange reconciles the order after every content mutation.
func (c *Controller) onDocumentChange(change store.Change) {
	if change.Structural {
		return
	}

	c.mu.Lock()
	// an order the user emptied on purpose stays empty
	next := Sanitize(c.order, change.Document, len(c.order) == 0)
	if slices.Equal(next, c.order) {
		c.mu.Unlock()
		return
	}
	c.logger.Debug("order reconciled", zap.Strings("from", c.order), zap.Strings("to", next))
	c.commitAndUnlock(next)
}

// commitAndUnlock installs next, releases c.mu and notifies listeners.
func (c *Controller) commitAndUnlock(next []string) {
	c.setOrderLocked(next)
	order := slices.Clone(c.order)
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(order))
	}
}

func (c *Controller) setOrderLocked(next []string) {
	c.order = next
	for i, key := range next {
		c.memory[key] = i
	}
}
