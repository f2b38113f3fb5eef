// Package workspace wires the editor core together: storage, the document store,
// the active-section controller, the drag panel and preferences.
package workspace

import (
	"context"
	"time"

	"github.com/nikogura/resume-builder/pkg/dragsort"
	"github.com/nikogura/resume-builder/pkg/importer"
	"github.com/nikogura/resume-builder/pkg/locale"
	"github.com/nikogura/resume-builder/pkg/persist"
	"github.com/nikogura/resume-builder/pkg/prefs"
	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/nikogura/resume-builder/pkg/scrollsync"
	"github.com/nikogura/resume-builder/pkg/sections"
	"github.com/nikogura/resume-builder/pkg/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures Open.
type Options struct {
	// Backend holds all persisted state. Required. The workspace closes it.
	Backend persist.Backend
	// Debounce is the quiet period before a document write. Zero uses the default.
	Debounce time.Duration
	// Seed is the document used when nothing is stored. Nil starts empty.
	Seed *resume.Data
	// Translator resolves export strings. Nil uses English.
	Translator locale.Translator
	Logger     *zap.Logger
}

// Workspace is one open editing session.
type Workspace struct {
	Store    *store.Store
	Sections *sections.Controller
	Panel    *dragsort.Panel
	Prefs    *prefs.Store

	backend     persist.Backend
	persister   *persist.Persister
	tr          locale.Translator
	unsubscribe func()
	logger      *zap.Logger
}

// Open loads the stored document and section order and wires persistence.
// Unreadable stored state is logged and replaced by defaults; only a missing
// backend is an error.
func Open(ctx context.Context, opts Options) (ws *Workspace, err error) {
	if opts.Backend == nil {
		err = errors.New("workspace needs a storage backend")
		return ws, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tr := opts.Translator
	if tr == nil {
		tr = locale.English()
	}

	persister := persist.NewPersister(opts.Backend, opts.Debounce, logger)

	doc, found, loadErr := persister.LoadDocument(ctx)
	if loadErr != nil {
		logger.Warn("could not load stored document, starting fresh", zap.Error(loadErr))
	}
	if !found {
		doc = resume.Normalize(opts.Seed)
	}

	order, _, loadErr := persister.LoadSections(ctx)
	if loadErr != nil {
		logger.Warn("could not load stored sections, deriving from document", zap.Error(loadErr))
		order = nil
	}

	docs := store.New(doc, logger)
	controller := sections.NewController(docs, order, logger)

	ws = &Workspace{
		Store:     docs,
		Sections:  controller,
		Panel:     dragsort.NewPanel(controller, logger),
		Prefs:     prefs.NewStore(opts.Backend, logger),
		backend:   opts.Backend,
		persister: persister,
		tr:        tr,
		logger:    logger.With(zap.String("module", "workspace")),
	}

	ws.unsubscribe = docs.Subscribe(func(change store.Change) {
		persister.ScheduleDocument(change.Document)
	})
	controller.OnChange(func(order []string) {
		saveErr := persister.SaveSections(context.Background(), order)
		if saveErr != nil {
			ws.logger.Warn("failed to save section order", zap.Error(saveErr))
		}
	})

	return ws, err
}

// Document returns a snapshot of the current document.
func (ws *Workspace) Document() (doc *resume.Data) {
	doc = ws.Store.Snapshot()
	return doc
}

// Import replaces the document with an imported one and re-derives the section
// order from its content. On failure nothing changes and the error is an
// *importer.Error.
func (ws *Workspace) Import(data []byte) (err error) {
	var doc *resume.Data
	doc, err = importer.FromJSON(data)
	if err != nil {
		return err
	}
	ws.install(doc)
	return err
}

// ImportObject is Import for an already decoded JSON object.
func (ws *Workspace) ImportObject(obj map[string]any) (err error) {
	var doc *resume.Data
	doc, err = importer.FromObject(obj)
	if err != nil {
		return err
	}
	ws.install(doc)
	return err
}

// LoadSample replaces the document with the built-in sample.
func (ws *Workspace) LoadSample() {
	ws.install(resume.Sample())
}

// Clear replaces the document with an empty one.
func (ws *Workspace) Clear() {
	ws.install(resume.Empty())
}

func (ws *Workspace) install(doc *resume.Data) {
	ws.Store.Replace(doc)
	ws.Sections.Rederive()
	ws.logger.Info("document replaced", zap.Strings("sections", ws.Sections.Order()))
}

// Export renders the document with the current section order.
func (ws *Workspace) Export(format renderer.Format) (out []byte, err error) {
	out, err = renderer.Export(ws.Store.Snapshot(), ws.Sections.Order(), format, ws.tr)
	return out, err
}

// ScrollSync creates a scroll engine for the two panes that follows the active
// section order.
func (ws *Workspace) ScrollSync(editor, preview scrollsync.Pane, opts ...scrollsync.Option) (engine *scrollsync.Engine) {
	engine = scrollsync.New(editor, preview, append([]scrollsync.Option{scrollsync.WithLogger(ws.logger)}, opts...)...)
	engine.SetOrder(ws.Sections.Order())
	ws.Sections.OnChange(engine.SetOrder)
	return engine
}

// Flush writes any buffered document change now.
func (ws *Workspace) Flush(ctx context.Context) (err error) {
	err = ws.persister.Flush(ctx)
	return err
}

// Close flushes buffered writes, detaches every listener and closes the backend.
func (ws *Workspace) Close(ctx context.Context) (err error) {
	if ws.unsubscribe != nil {
		ws.unsubscribe()
		ws.unsubscribe = nil
	}
	ws.Sections.Close()

	err = ws.persister.Close(ctx)
	if err != nil {
		err = errors.Wrap(err, "failed to flush on close")
	}

	closeErr := ws.backend.Close()
	if err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "failed to close storage")
	}
	return err
}
