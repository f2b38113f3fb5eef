package persist

import (
	"context"
	"sync"
	"time"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a scheduled document write.
const DefaultDebounce = 400 * time.Millisecond

// Persister reads and writes the document and the active-section order.
// Document writes are debounced; section writes are immediate.
type Persister struct {
	backend  Backend
	debounce time.Duration
	logger   *zap.Logger

	writeMu sync.Mutex // held for the whole of a document write

	mu      sync.Mutex
	timer   *time.Timer
	pending *resume.Data
	closed  bool
}

// NewPersister creates a persister over backend. A non-positive debounce uses
// DefaultDebounce.
func NewPersister(backend Backend, debounce time.Duration, logger *zap.Logger) (p *Persister) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p = &Persister{
		backend:  backend,
		debounce: debounce,
		logger:   logger.With(zap.String("module", "persist")),
	}
	return p
}

// LoadDocument reads and normalizes the stored document. Corrupt data is logged
// and reported as not found; only backend failures return an error.
func (p *Persister) LoadDocument(ctx context.Context) (doc *resume.Data, found bool, err error) {
	var raw []byte
	raw, found, err = Read(ctx, p.backend, DocumentKey)
	if err != nil {
		err = errors.Wrap(err, "failed to load document")
		return doc, found, err
	}
	if !found {
		return doc, found, err
	}

	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		p.logger.Warn("ignoring corrupt stored document", zap.Int("bytes", len(raw)))
		found = false
		return doc, found, err
	}

	doc = resume.Normalize(raw)
	return doc, found, err
}

// ScheduleDocument buffers doc and (re)starts the debounce timer. Only the
// latest buffered version is written when the timer fires.
func (p *Persister) ScheduleDocument(doc *resume.Data) {
	snapshot := doc.Clone()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.logger.Warn("document change after close was not persisted")
		return
	}

	p.pending = snapshot
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		flushErr := p.Flush(context.Background())
		if flushErr != nil {
			p.logger.Warn("debounced document write failed", zap.Error(flushErr))
		}
	})
}

// Pending reports whether a document write is buffered.
func (p *Persister) Pending() (pending bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending = p.pending != nil
	return pending
}

// Flush writes the buffered document now, if there is one.
func (p *Persister) Flush(ctx context.Context) (err error) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	doc := p.pending
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	if doc == nil {
		return err
	}

	err = WriteJSON(ctx, p.backend, DocumentKey, doc)
	if err != nil {
		p.mu.Lock()
		if p.pending == nil {
			p.pending = doc
		}
		p.mu.Unlock()
		err = errors.Wrap(err, "failed to save document")
		return err
	}

	p.logger.Debug("document saved")
	return err
}

// SaveDocument writes doc immediately and drops any buffered version.
func (p *Persister) SaveDocument(ctx context.Context, doc *resume.Data) (err error) {
	p.mu.Lock()
	p.pending = doc.Clone()
	p.mu.Unlock()

	err = p.Flush(ctx)
	return err
}

// Close flushes the buffered document and stops accepting new ones.
func (p *Persister) Close(ctx context.Context) (err error) {
	err = p.Flush(ctx)

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	return err
}

// LoadSections reads the stored active-section order. Corrupt data is logged and
// reported as not found.
func (p *Persister) LoadSections(ctx context.Context) (order []string, found bool, err error) {
	found, err = ReadJSON(ctx, p.backend, SectionsKey, &order)
	if errors.Is(err, ErrCorrupt) {
		p.logger.Warn("ignoring corrupt stored sections", zap.Error(err))
		order = nil
		found = false
		err = nil
		return order, found, err
	}
	if err != nil {
		err = errors.Wrap(err, "failed to load sections")
		return order, found, err
	}
	if order == nil {
		found = false
	}
	return order, found, err
}

// SaveSections writes the active-section order immediately.
func (p *Persister) SaveSections(ctx context.Context, order []string) (err error) {
	if order == nil {
		order = []string{}
	}
	err = WriteJSON(ctx, p.backend, SectionsKey, order)
	if err != nil {
		err = errors.Wrap(err, "failed to save sections")
		return err
	}
	return err
}
