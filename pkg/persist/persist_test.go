package persist

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBackend struct {
	Backend
	mu   sync.Mutex
	sets map[string]int
	fail bool
}

func newCountingBackend() (b *countingBackend) {
	b = &countingBackend{Backend: NewMemoryBackend(), sets: map[string]int{}}
	return b
}

func (b *countingBackend) Set(ctx context.Context, key string, value []byte) (err error) {
	b.mu.Lock()
	fail := b.fail
	b.sets[key]++
	b.mu.Unlock()
	if fail {
		err = errors.New("disk full")
		return err
	}
	err = b.Backend.Set(ctx, key, value)
	return err
}

func (b *countingBackend) count(key string) (n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n = b.sets[key]
	return n
}

func named(name string) (doc *resume.Data) {
	doc = resume.Empty()
	doc.Personal.FullName = name
	return doc
}

func TestBackends(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	file, err := NewFileBackend(filepath.Join(t.TempDir(), "state.json"), nil)
	require.NoError(t, err)

	backends := map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"redis":  NewRedisBackendWithClient(client, ""),
	}

	for name, b := range backends {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(func() { _ = b.Close() })

			_, err := b.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Set(ctx, "k", []byte(`{"a":1}`)))
			got, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(got))

			require.NoError(t, b.Set(ctx, "k", []byte(`[1,2]`)))
			got, err = b.Get(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `[1,2]`, string(got))

			require.NoError(t, b.Delete(ctx, "k"))
			_, err = b.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, b.Delete(ctx, "never-set"))
		})
	}

	assert.False(t, mr.Exists(DefaultRedisPrefix+"k"))
}

func TestRedisBackendPrefixesKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	b, err := NewRedisBackend(ctx, "redis://"+mr.Addr(), "cv:")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Set(ctx, "theme", []byte(`"dark"`)))
	stored, err := mr.Get("cv:theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, stored)
}

func TestNewRedisBackendBadURL(t *testing.T) {
	_, err := NewRedisBackend(context.Background(), "not a url", "")
	assert.Error(t, err)
}

func TestFileBackendPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	b, err := NewFileBackend(path, nil)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "theme", []byte(`"dark"`)))
	require.NoError(t, b.Set(ctx, "raw", []byte(`not json`)))

	reopened, err := NewFileBackend(path, nil)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(got))

	got, err = reopened.Get(ctx, "raw")
	require.NoError(t, err)
	assert.Equal(t, `"not json"`, string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackendCorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	b, err := NewFileBackend(path, nil)
	require.NoError(t, err)

	_, err = b.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, "theme", []byte(`"light"`)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"light"}`, string(data))
}

func TestReadFallsBackToLegacyKey(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Set(ctx, ThemeKey.Legacy, []byte(`"dark"`)))

	var theme string
	found, err := ReadJSON(ctx, b, ThemeKey, &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", theme)

	require.NoError(t, WriteJSON(ctx, b, ThemeKey, "light"))
	found, err = ReadJSON(ctx, b, ThemeKey, &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", theme)

	legacy, err := b.Get(ctx, ThemeKey.Legacy)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(legacy))

	require.NoError(t, Remove(ctx, b, ThemeKey))
	found, err = ReadJSON(ctx, b, ThemeKey, &theme)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadJSONCorrupt(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Set(ctx, SectionsKey.Current, []byte(`[unterminated`)))

	var order []string
	found, err := ReadJSON(ctx, b, SectionsKey, &order)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestPersisterDebouncesDocumentWrites(t *testing.T) {
	ctx := context.Background()
	b := newCountingBackend()
	p := NewPersister(b, 30*time.Millisecond, nil)

	p.ScheduleDocument(named("one"))
	p.ScheduleDocument(named("two"))
	p.ScheduleDocument(named("three"))
	assert.True(t, p.Pending())
	assert.Equal(t, 0, b.count(DocumentKey.Current))

	require.Eventually(t, func() bool { return b.count(DocumentKey.Current) == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, p.Pending())

	doc, found, err := p.LoadDocument(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "three", doc.Personal.FullName)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, b.count(DocumentKey.Current))
}

func TestPersisterScheduleCopiesDocument(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(NewMemoryBackend(), time.Hour, nil)

	doc := named("before")
	p.ScheduleDocument(doc)
	doc.Personal.FullName = "after"

	require.NoError(t, p.Flush(ctx))
	loaded, _, err := p.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, "before", loaded.Personal.FullName)
}

func TestPersisterCloseFlushesPendingWrite(t *testing.T) {
	ctx := context.Background()
	b := newCountingBackend()
	p := NewPersister(b, time.Hour, nil)

	p.ScheduleDocument(named("Jane"))
	require.NoError(t, p.Close(ctx))
	assert.Equal(t, 1, b.count(DocumentKey.Current))

	p.ScheduleDocument(named("late"))
	assert.False(t, p.Pending())

	doc, found, err := p.LoadDocument(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Jane", doc.Personal.FullName)
}

func TestPersisterFlushFailureKeepsPending(t *testing.T) {
	ctx := context.Background()
	b := newCountingBackend()
	b.fail = true
	p := NewPersister(b, time.Hour, nil)

	p.ScheduleDocument(named("Jane"))
	require.Error(t, p.Flush(ctx))
	assert.True(t, p.Pending())

	b.mu.Lock()
	b.fail = false
	b.mu.Unlock()
	require.NoError(t, p.Flush(ctx))
	assert.False(t, p.Pending())
}

func TestPersisterLoadDocument(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		stored string
		found  bool
		want   string
	}{
		{name: "absent", found: false},
		{name: "current key", key: DocumentKey.Current, stored: `{"personal":{"fullName":"Jane Doe"}}`, found: true, want: "Jane Doe"},
		{name: "legacy key", key: DocumentKey.Legacy, stored: `{"personal":{"fullName":"Old Jane"}}`, found: true, want: "Old Jane"},
		{name: "corrupt json", key: DocumentKey.Current, stored: `{"personal":`, found: false},
		{name: "not an object", key: DocumentKey.Current, stored: `[1,2,3]`, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := NewMemoryBackend()
			if tt.key != "" {
				require.NoError(t, b.Set(ctx, tt.key, []byte(tt.stored)))
			}
			p := NewPersister(b, 0, nil)

			doc, found, err := p.LoadDocument(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if tt.found {
				require.NotNil(t, doc)
				assert.Equal(t, tt.want, doc.Personal.FullName)
				assert.NotNil(t, doc.Experience)
			}
		})
	}
}

func TestPersisterSections(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	p := NewPersister(b, 0, nil)

	_, found, err := p.LoadSections(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Set(ctx, SectionsKey.Legacy, []byte(`["skills","summary"]`)))
	order, found, err := p.LoadSections(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"skills", "summary"}, order)

	require.NoError(t, p.SaveSections(ctx, nil))
	order, found, err = p.LoadSections(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{}, order)

	require.NoError(t, b.Set(ctx, SectionsKey.Current, []byte(`{"not":"a list"}`)))
	order, found, err = p.LoadSections(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, order)
}
