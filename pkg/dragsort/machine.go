// Package dragsort implements pointer-driven reordering of the active section list
// as a pure state machine plus a panel that commits results.
package dragsort

import (
	"slices"
)

// Position says on which side of the hovered item the dragged item would land.
type Position string

const (
	// Before drops above the hovered item.
	Before Position = "before"
	// After drops below the hovered item.
	After Position = "after"
)

// Phase is the machine's coarse state.
type Phase int

const (
	// Idle means no drag is in progress.
	Idle Phase = iota
	// Dragging means a pointer captured an item.
	Dragging
)

// Rect is the vertical extent of a list row, measured when the drag starts.
type Rect struct {
	Key    string
	Top    float64
	Height float64
}

// Mid returns the vertical midpoint of the row.
func (r Rect) Mid() (mid float64) {
	mid = r.Top + r.Height/2
	return mid
}

// State is the complete machine state. The zero value is Idle.
type State struct {
	Phase Phase
	// Active is the key of the dragged row.
	Active string
	// PointerOffset is the pointer's distance from the top of the active row at pointer-down.
	PointerOffset float64
	// PointerY is the latest pointer position.
	PointerY float64
	// Over and Position drive the drop indicator only.
	Over     string
	Position Position
	// Order and Rows are captured at pointer-down and stay fixed for the drag.
	Order []string
	Rows  []Rect
}

// Event is one of PointerDown, PointerMove, PointerUp or PointerCancel.
type Event interface {
	isEvent()
}

// PointerDown captures a row.
type PointerDown struct {
	Key   string
	Y     float64
	Order []string
	Rows  []Rect
}

// PointerMove reports the pointer's vertical position.
type PointerMove struct {
	Y float64
}

// PointerUp ends the drag and commits a valid drop.
type PointerUp struct{}

// PointerCancel ends the drag and commits a valid drop, like PointerUp.
type PointerCancel struct{}

func (PointerDown) isEvent()   {}
func (PointerMove) isEvent()   {}
func (PointerUp) isEvent()     {}
func (PointerCancel) isEvent() {}

// Effect is produced by a transition for the caller to apply.
type Effect interface {
	isEffect()
}

// Commit asks the caller to install Next, remembering Previous for undo.
type Commit struct {
	Previous []string
	Next     []string
}

func (Commit) isEffect() {}

// Transition is the pure step function of the machine.
func Transition(state State, event Event) (next State, effects []Effect) {
	next = state

	switch ev := event.(type) {
	case PointerDown:
		if state.Phase != Idle {
			return next, effects
		}
		row, ok := findRow(ev.Rows, ev.Key)
		if !ok || !slices.Contains(ev.Order, ev.Key) {
			return next, effects
		}
		next = State{
			Phase:         Dragging,
			Active:        ev.Key,
			PointerOffset: ev.Y - row.Top,
			PointerY:      ev.Y,
			Order:         slices.Clone(ev.Order),
			Rows:          slices.Clone(ev.Rows),
		}

	case PointerMove:
		if state.Phase != Dragging {
			return next, effects
		}
		next.PointerY = ev.Y
		next.Over, next.Position = hitTest(state.Rows, state.Active, ev.Y)

	case PointerUp, PointerCancel:
		if state.Phase != Dragging {
			return next, effects
		}
		if state.Over != "" {
			moved := Move(state.Order, state.Active, state.Over, state.Position)
			if !slices.Equal(moved, state.Order) {
				effects = append(effects, Commit{Previous: slices.Clone(state.Order), Next: moved})
			}
		}
		next = State{}
	}

	return next, effects
}

// Move removes active from order and reinserts it next to over. It returns a copy
// of order unchanged when either key is missing or they are the same.
func Move(order []string, active, over string, position Position) (moved []string) {
	moved = slices.Clone(order)
	if active == over {
		return moved
	}
	from := slices.Index(moved, active)
	if from < 0 || !slices.Contains(moved, over) {
		return moved
	}

	moved = slices.Delete(moved, from, from+1)
	to := slices.Index(moved, over)
	if position == After {
		to++
	}
	moved = slices.Insert(moved, to, active)
	return moved
}

// hitTest finds the row under y, other than the active one, and which half of it y is in.
func hitTest(rows []Rect, active string, y float64) (over string, position Position) {
	for _, row := range rows {
		if row.Key == active {
			continue
		}
		if y < row.Top || y >= row.Top+row.Height {
			continue
		}
		over = row.Key
		position = After
		if y < row.Mid() {
			position = Before
		}
		return over, position
	}
	return over, position
}

func findRow(rows []Rect, key string) (row Rect, ok bool) {
	for _, r := range rows {
		if r.Key == key {
			row = r
			ok = true
			return row, ok
		}
	}
	return row, ok
}
