package dragsort

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Reorderer is the order owner the panel commits to.
type Reorderer interface {
	Order() []string
	Reorder(next []string)
	Canonical() []string
}

// Indicator is the read model used to draw the drop marker and the dragged ghost.
type Indicator struct {
	Dragging bool
	Active   string
	Over     string
	Position Position
	// GhostTop is where the top edge of the dragged row should be drawn.
	GhostTop float64
}

// Panel drives the machine against a Reorderer and keeps a single level of undo.
type Panel struct {
	mu     sync.Mutex
	state  State
	target Reorderer
	last   *Commit
	logger *zap.Logger
}

// NewPanel creates a panel committing to target.
func NewPanel(target Reorderer, logger *zap.Logger) (p *Panel) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p = &Panel{
		target: target,
		logger: logger.With(zap.String("module", "dragsort")),
	}
	return p
}

// Dispatch feeds one pointer event through the machine and applies its effects.
// A PointerDown without an Order captures the target's current order.
// It reports whether a new order was committed.
func (p *Panel) Dispatch(event Event) (committed bool) {
	if down, ok := event.(PointerDown); ok && down.Order == nil {
		down.Order = p.target.Order()
		event = down
	}

	p.mu.Lock()
	next, effects := Transition(p.state, event)
	p.state = next
	p.mu.Unlock()

	for _, effect := range effects {
		commit, ok := effect.(Commit)
		if !ok {
			continue
		}
		// the order moved underneath the drag
		if !slices.Equal(p.target.Order(), commit.Previous) {
			p.logger.Debug("drop discarded, order changed during drag")
			continue
		}
		p.apply(commit)
		committed = true
	}
	return committed
}

// State returns the current machine state.
func (p *Panel) State() (state State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state = p.state
	return state
}

// Indicator returns the drop indicator read model.
func (p *Panel) Indicator() (ind Indicator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Phase != Dragging {
		return ind
	}
	ind = Indicator{
		Dragging: true,
		Active:   p.state.Active,
		Over:     p.state.Over,
		Position: p.state.Position,
		GhostTop: p.state.PointerY - p.state.PointerOffset,
	}
	return ind
}

// CanUndo reports whether the last committed reorder can still be reverted.
func (p *Panel) CanUndo() (ok bool) {
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()
	ok = last != nil && slices.Equal(p.target.Order(), last.Next)
	return ok
}

// Undo restores the order from before the last commit. Only one level is kept.
func (p *Panel) Undo() (undone bool) {
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()
	if last == nil || !slices.Equal(p.target.Order(), last.Next) {
		return undone
	}

	p.mu.Lock()
	p.last = nil
	p.mu.Unlock()

	p.target.Reorder(last.Previous)
	undone = true
	return undone
}

// CanRestore reports whether the order differs from the registry's canonical order.
func (p *Panel) CanRestore() (ok bool) {
	ok = !slices.Equal(p.target.Order(), p.target.Canonical())
	return ok
}

// Restore resets the order to canonical registry order. It can be undone.
func (p *Panel) Restore() (restored bool) {
	if !p.CanRestore() {
		return restored
	}
	p.apply(Commit{Previous: p.target.Order(), Next: p.target.Canonical()})
	restored = true
	return restored
}

func (p *Panel) apply(commit Commit) {
	p.target.Reorder(commit.Next)
	p.mu.Lock()
	p.last = &commit
	p.mu.Unlock()
	p.logger.Debug("order committed", zap.Strings("order", commit.Next))
}
