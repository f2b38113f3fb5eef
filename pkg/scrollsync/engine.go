// Package scrollsync keeps the preview pane scrolled in step with the editor pane.
//
// Both panes render the same ordered sections at different heights. Sections
// register their elements with the Engine; on every editor scroll the engine maps
// the editor offset onto the preview section by section.
package scrollsync

import (
	"sync"

	"github.com/nikogura/resume-builder/pkg/resume"
	"go.uber.org/zap"
)

// SectionAnchor is the item key under which a preview section registers its whole-section anchor.
const SectionAnchor = "__section__"

// DefaultToolbarOffset is the height of the sticky toolbar over the preview.
const DefaultToolbarOffset = 64.0

// Pane is a scrollable container.
type Pane interface {
	ScrollTop() float64
	ScrollHeight() float64
	ClientHeight() float64
	ScrollTo(top float64)
}

// Element is a registered block inside a pane. Top is relative to the pane's content.
type Element interface {
	Top() float64
	Height() float64
}

// Scheduler runs fn on the next rendering tick. A scheduler that reports
// accepted must eventually run fn.
type Scheduler interface {
	RequestFrame(fn func()) (accepted bool)
}

type registration struct {
	el    Element
	token uint64
}

// Engine maps editor scroll offsets onto the preview.
type Engine struct {
	mu            sync.Mutex
	editor        Pane
	preview       Pane
	scheduler     Scheduler
	toolbarOffset float64
	editorEls     map[string]registration
	previewEls    map[string]registration
	order         []string
	pending       bool
	nextToken     uint64
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the frame scheduler. The default is a FrameScheduler at 60Hz.
func WithScheduler(s Scheduler) (opt Option) {
	opt = func(e *Engine) {
		e.scheduler = s
	}
	return opt
}

// WithToolbarOffset sets the sticky toolbar height used by JumpTo.
func WithToolbarOffset(px float64) (opt Option) {
	opt = func(e *Engine) {
		e.toolbarOffset = px
	}
	return opt
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) (opt Option) {
	opt = func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
	return opt
}

// New creates an engine for the given panes.
func New(editor, preview Pane, opts ...Option) (e *Engine) {
	e = &Engine{
		editor:        editor,
		preview:       preview,
		toolbarOffset: DefaultToolbarOffset,
		editorEls:     map[string]registration{},
		previewEls:    map[string]registration{},
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = NewFrameScheduler(DefaultFrameInterval)
	}
	e.logger = e.logger.With(zap.String("module", "scrollsync"))
	return e
}

// PreviewKey builds the registry key of a preview element.
func PreviewKey(section, item string) (key string) {
	if item == "" {
		item = SectionAnchor
	}
	key = section + ":" + item
	return key
}

// RegisterEditor records the editor element of a section. The returned function
// removes it again, unless a newer element has replaced it in the meantime.
func (e *Engine) RegisterEditor(section string, el Element) (unregister func()) {
	unregister = e.register(e.editorEls, section, el)
	return unregister
}

// RegisterPreview records a preview element for a section or one of its items.
// An empty item registers the whole-section anchor.
func (e *Engine) RegisterPreview(section, item string, el Element) (unregister func()) {
	unregister = e.register(e.previewEls, PreviewKey(section, item), el)
	return unregister
}

func (e *Engine) register(registry map[string]registration, key string, el Element) (unregister func()) {
	e.mu.Lock()
	e.nextToken++
	token := e.nextToken
	if el == nil {
		delete(registry, key)
	} else {
		registry[key] = registration{el: el, token: token}
	}
	e.mu.Unlock()

	unregister = func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if current, ok := registry[key]; ok && current.token == token {
			delete(registry, key)
		}
	}
	return unregister
}

// SetOrder sets the active section order. The personal header is always first and
// need not be included.
func (e *Engine) SetOrder(order []string) {
	e.mu.Lock()
	e.order = append([]string(nil), order...)
	e.mu.Unlock()
}

// HandleEditorScroll schedules a sync on the next frame. Calls arriving before the
// frame fires are coalesced; the sync reads the latest editor offset.
func (e *Engine) HandleEditorScroll() {
	e.mu.Lock()
	if e.pending {
		e.mu.Unlock()
		return
	}
	e.pending = true
	e.mu.Unlock()

	accepted := e.scheduler.RequestFrame(func() {
		e.mu.Lock()
		e.pending = false
		e.mu.Unlock()
		e.Sync()
	})
	if !accepted {
		e.mu.Lock()
		e.pending = false
		e.mu.Unlock()
		e.logger.Debug("scroll sync frame refused")
	}
}

// Sync maps the current editor offset onto the preview immediately.
func (e *Engine) Sync() {
	pairs := e.Pairs()
	editorMax := maxScroll(e.editor)
	previewMax := maxScroll(e.preview)

	target := MapOffset(e.editor.ScrollTop(), editorMax, previewMax, pairs)
	e.preview.ScrollTo(target)
}

// Pairs returns the measured sections present in both panes, in render order.
func (e *Engine) Pairs() (pairs []Pair) {
	type resolved struct {
		key     string
		editor  Element
		preview Element
	}

	e.mu.Lock()
	keys := append([]string{resume.SectionPersonal}, e.order...)
	found := make([]resolved, 0, len(keys))
	for _, key := range keys {
		editorReg, hasEditor := e.editorEls[key]
		previewReg, hasPreview := e.previewEls[PreviewKey(key, SectionAnchor)]
		if !hasEditor || !hasPreview {
			continue
		}
		found = append(found, resolved{key: key, editor: editorReg.el, preview: previewReg.el})
	}
	e.mu.Unlock()

	pairs = make([]Pair, 0, len(found))
	for _, r := range found {
		pairs = append(pairs, Pair{
			Key:           r.key,
			EditorHeight:  r.editor.Height(),
			PreviewHeight: r.preview.Height(),
		})
	}
	return pairs
}

// JumpTo scrolls the preview so the element for item is centered and not hidden
// under the toolbar. It falls back to the section anchor and reports whether
// anything was found.
func (e *Engine) JumpTo(section, item string) (found bool) {
	e.mu.Lock()
	reg, ok := e.previewEls[PreviewKey(section, item)]
	if !ok {
		reg, ok = e.previewEls[PreviewKey(section, SectionAnchor)]
	}
	toolbar := e.toolbarOffset
	e.mu.Unlock()

	if !ok {
		e.logger.Debug("no preview anchor", zap.String("section", section), zap.String("item", item))
		return found
	}

	top := reg.el.Top()
	target := top + reg.el.Height()/2 - e.preview.ClientHeight()/2
	if top-target < toolbar {
		target = top - toolbar
	}
	target = clamp(target, 0, maxScroll(e.preview))

	e.preview.ScrollTo(target)
	found = true
	return found
}

func maxScroll(p Pane) (m float64) {
	m = max(p.ScrollHeight()-p.ClientHeight(), 0)
	return m
}
