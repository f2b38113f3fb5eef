package workspace

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/dragsort"
	"github.com/nikogura/resume-builder/pkg/importer"
	"github.com/nikogura/resume-builder/pkg/persist"
	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileBackend(t *testing.T, path string) (b *persist.FileBackend) {
	t.Helper()
	b, err := persist.NewFileBackend(path, nil)
	require.NoError(t, err)
	return b
}

func open(t *testing.T, backend persist.Backend, seed *resume.Data) (ws *Workspace) {
	t.Helper()
	ws, err := Open(context.Background(), Options{Backend: backend, Debounce: time.Hour, Seed: seed})
	require.NoError(t, err)
	return ws
}

func dragFirstAfterSecond(ws *Workspace) (committed bool) {
	order := ws.Sections.Order()
	rows := make([]dragsort.Rect, 0, len(order))
	for i, key := range order {
		rows = append(rows, dragsort.Rect{Key: key, Top: float64(i) * 40, Height: 40})
	}
	ws.Panel.Dispatch(dragsort.PointerDown{Key: order[0], Y: 10, Rows: rows})
	ws.Panel.Dispatch(dragsort.PointerMove{Y: 70})
	committed = ws.Panel.Dispatch(dragsort.PointerUp{})
	return committed
}

type pane struct{ top float64 }

func (p *pane) ScrollTop() float64    { return p.top }
func (p *pane) ScrollHeight() float64 { return 1000 }
func (p *pane) ClientHeight() float64 { return 100 }
func (p *pane) ScrollTo(top float64)  { p.top = top }

type block struct{ top, height float64 }

func (b block) Top() float64    { return b.top }
func (b block) Height() float64 { return b.height }

func TestOpenRequiresBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.Error(t, err)
}

func TestOpenEmptyStorage(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), nil)
	defer ws.Close(context.Background())

	assert.Equal(t, []string{}, ws.Sections.Order())
	assert.Empty(t, ws.Document().Personal.FullName)
}

func TestOpenSeedDerivesOrder(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), resume.Sample())
	defer ws.Close(context.Background())

	assert.Equal(t, []string{"summary", "experience", "projects", "education", "skills", "languages", "socials"}, ws.Sections.Order())
}

func TestChangesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	ws := open(t, fileBackend(t, path), resume.Sample())
	ws.Store.Update(func(d *resume.Data) { d.Personal.FullName = "Jane Doe" })
	ws.Sections.Toggle("summary", false)
	require.NoError(t, ws.Close(ctx))

	reopened := open(t, fileBackend(t, path), nil)
	defer reopened.Close(ctx)

	assert.Equal(t, "Jane Doe", reopened.Document().Personal.FullName)
	assert.NotContains(t, reopened.Sections.Order(), "summary")
	assert.Contains(t, reopened.Sections.Order(), "experience")
}

func TestSectionOrderIsSavedImmediately(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	ws := open(t, backend, resume.Sample())

	require.True(t, dragFirstAfterSecond(ws))
	var stored []string
	found, err := persist.ReadJSON(ctx, backend, persist.SectionsKey, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ws.Sections.Order(), stored)

	_, err = backend.Get(ctx, persist.DocumentKey.Current)
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestDocumentWritesAreDebounced(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	ws, err := Open(ctx, Options{Backend: backend, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer ws.Close(ctx)

	ws.Store.Update(func(d *resume.Data) { d.Personal.FullName = "J" })
	ws.Store.Update(func(d *resume.Data) { d.Personal.FullName = "Jane" })

	require.Eventually(t, func() bool {
		raw, getErr := backend.Get(ctx, persist.DocumentKey.Current)
		if getErr != nil {
			return false
		}
		var doc resume.Data
		return json.Unmarshal(raw, &doc) == nil && doc.Personal.FullName == "Jane"
	}, time.Second, 5*time.Millisecond)
}

func TestImport(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), resume.Sample())
	defer ws.Close(context.Background())

	err := ws.Import([]byte(`{"personal":{"fullName":"Jane Doe"},"experience":[{"company":"Acme","role":"Engineer"}]}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", ws.Document().Personal.FullName)
	assert.Equal(t, []string{"experience"}, ws.Sections.Order())
	assert.True(t, ws.Store.Dirty())
}

func TestImportFailureLeavesStateAlone(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), resume.Sample())
	defer ws.Close(context.Background())

	before := ws.Document()
	order := ws.Sections.Order()

	err := ws.Import([]byte(`{"experience":[]}`))
	var importErr *importer.Error
	require.True(t, errors.As(err, &importErr))

	err = ws.ImportObject(map[string]any{"skills": []any{"Go"}})
	require.True(t, errors.As(err, &importErr))

	assert.Equal(t, before, ws.Document())
	assert.Equal(t, order, ws.Sections.Order())
}

func TestCorruptStoredStateFallsBack(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, persist.DocumentKey.Current, []byte(`{"personal":`)))
	require.NoError(t, backend.Set(ctx, persist.SectionsKey.Current, []byte(`"summary"`)))

	ws := open(t, backend, resume.Sample())
	defer ws.Close(ctx)

	assert.Equal(t, resume.Sample().Personal.FullName, ws.Document().Personal.FullName)
	assert.Contains(t, ws.Sections.Order(), "experience")
}

func TestLegacyKeysAreRead(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, persist.DocumentKey.Legacy, []byte(`{"personal":{"name":"Old Jane"},"skills":["Go"],"experience":[{"company":"Acme"}]}`)))
	require.NoError(t, backend.Set(ctx, persist.SectionsKey.Legacy, []byte(`["skills","custom:gone","experience"]`)))

	ws := open(t, backend, nil)
	defer ws.Close(ctx)

	assert.Equal(t, "Old Jane", ws.Document().Personal.FullName)
	assert.Equal(t, []string{"skills", "experience"}, ws.Sections.Order())
}

func TestExport(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), nil)
	defer ws.Close(context.Background())

	require.NoError(t, ws.Import([]byte(`{"personal":{"fullName":"Jane Doe","summary":"Hi"},"experience":[{"company":"Acme","role":"Engineer","startDate":"2020-01","endDate":"2021-01","highlights":["Did X"]}]}`)))
	ws.Sections.Toggle("summary", false)

	out, err := ws.Export(renderer.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(out), "### Acme ｜ Engineer (2020-01 - 2021-01)")
	assert.NotContains(t, string(out), "## Summary")

	out, err = ws.Export(renderer.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fullName": "Jane Doe"`)
}

func TestScrollSyncFollowsOrder(t *testing.T) {
	ws := open(t, persist.NewMemoryBackend(), resume.Sample())
	defer ws.Close(context.Background())

	engine := ws.ScrollSync(&pane{}, &pane{})
	engine.RegisterEditor("skills", block{height: 10})
	engine.RegisterPreview("skills", "", block{height: 10})

	require.Len(t, engine.Pairs(), 1)
	ws.Sections.Toggle("skills", false)
	assert.Empty(t, engine.Pairs())
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		Storage: config.StorageConfig{
			Backend:    config.BackendFile,
			Path:       filepath.Join(t.TempDir(), "state.json"),
			DebounceMS: 10,
		},
		Locale: config.LocaleConfig{Language: "zh"},
	}

	ws, err := FromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	defer ws.Close(ctx)

	ws.LoadSample()
	out, err := ws.Export(renderer.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(out), "## 工作经历")
}

func TestOpenBackendUnknown(t *testing.T) {
	_, err := OpenBackend(context.Background(), config.Config{Storage: config.StorageConfig{Backend: "tape"}}, nil)
	assert.Error(t, err)
}
