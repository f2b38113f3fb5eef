package dragsort

import (
	"testing"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/nikogura/resume-builder/pkg/sections"
	"github.com/nikogura/resume-builder/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T, order []string) (c *sections.Controller, p *Panel) {
	t.Helper()
	s := store.New(resume.Sample(), nil)
	c = sections.NewController(s, order, nil)
	t.Cleanup(c.Close)
	p = NewPanel(c, nil)
	return c, p
}

func drag(p *Panel, order []string, active string, downY, moveY float64) (committed bool) {
	p.Dispatch(PointerDown{Key: active, Y: downY, Rows: rows(order...)})
	p.Dispatch(PointerMove{Y: moveY})
	committed = p.Dispatch(PointerUp{})
	return committed
}

func TestPanelDragCommitAndUndo(t *testing.T) {
	order := []string{"experience", "projects", "skills"}
	c, p := newPanel(t, order)

	assert.False(t, p.CanUndo())
	require.True(t, drag(p, order, "experience", 10, 70))
	assert.Equal(t, []string{"projects", "experience", "skills"}, c.Order())
	assert.Equal(t, Idle, p.State().Phase)

	require.True(t, p.CanUndo())
	assert.True(t, p.Undo())
	assert.Equal(t, order, c.Order())

	assert.False(t, p.CanUndo())
	assert.False(t, p.Undo())
}

func TestPanelUndoIsSingleLevel(t *testing.T) {
	order := []string{"experience", "projects", "skills"}
	c, p := newPanel(t, order)

	require.True(t, drag(p, order, "experience", 10, 70))
	second := c.Order()
	require.True(t, drag(p, second, "skills", 90, 10))
	assert.Equal(t, []string{"skills", "projects", "experience"}, c.Order())

	assert.True(t, p.Undo())
	assert.Equal(t, second, c.Order())
	assert.False(t, p.Undo())
}

func TestPanelUndoInvalidAfterExternalChange(t *testing.T) {
	order := []string{"experience", "projects", "skills"}
	c, p := newPanel(t, order)

	require.True(t, drag(p, order, "experience", 10, 70))
	c.Toggle("skills", false)

	assert.False(t, p.CanUndo())
	assert.False(t, p.Undo())
	assert.Equal(t, []string{"projects", "experience"}, c.Order())
}

func TestPanelDropWithoutTargetIsNoop(t *testing.T) {
	order := []string{"experience", "projects"}
	c, p := newPanel(t, order)

	assert.False(t, drag(p, order, "experience", 10, 400))
	assert.Equal(t, order, c.Order())
	assert.False(t, p.CanUndo())
}

func TestPanelIndicator(t *testing.T) {
	order := []string{"experience", "projects"}
	_, p := newPanel(t, order)

	assert.Equal(t, Indicator{}, p.Indicator())

	p.Dispatch(PointerDown{Key: "experience", Y: 15, Rows: rows(order...)})
	p.Dispatch(PointerMove{Y: 45})

	ind := p.Indicator()
	assert.True(t, ind.Dragging)
	assert.Equal(t, "experience", ind.Active)
	assert.Equal(t, "projects", ind.Over)
	assert.Equal(t, Before, ind.Position)
	assert.InDelta(t, 30.0, ind.GhostTop, 0.001)
}

func TestPanelRestore(t *testing.T) {
	c, p := newPanel(t, []string{"skills", "summary", "experience"})

	require.True(t, p.CanRestore())
	assert.True(t, p.Restore())
	assert.Equal(t, []string{"summary", "experience", "skills"}, c.Order())
	assert.False(t, p.CanRestore())
	assert.False(t, p.Restore())

	assert.True(t, p.Undo())
	assert.Equal(t, []string{"skills", "summary", "experience"}, c.Order())
}
