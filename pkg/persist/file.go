package persist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FileBackend keeps every key in one JSON object on disk. Writes replace the file
// atomically through a temporary file and rename.
type FileBackend struct {
	path   string
	mu     sync.Mutex
	values map[string]json.RawMessage
	logger *zap.Logger
}

// NewFileBackend opens path, creating its directory when needed. A corrupt file is
// logged and treated as empty; it is overwritten on the next write.
func NewFileBackend(path string, logger *zap.Logger) (b *FileBackend, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b = &FileBackend{
		path:   path,
		values: map[string]json.RawMessage{},
		logger: logger.With(zap.String("module", "persist"), zap.String("path", path)),
	}

	err = os.MkdirAll(filepath.Dir(path), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create storage directory for %s", path)
		return b, err
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
			return b, err
		}
		err = errors.Wrapf(err, "failed to read storage file: %s", path)
		return b, err
	}

	if len(data) == 0 {
		return b, err
	}

	var values map[string]json.RawMessage
	if jsonErr := json.Unmarshal(data, &values); jsonErr != nil {
		b.logger.Warn("ignoring corrupt storage file", zap.Error(jsonErr))
		return b, err
	}
	for key, value := range values {
		b.values[key] = value
	}

	return b, err
}

// Get implements Backend.
func (b *FileBackend) Get(_ context.Context, key string) (value []byte, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, ok := b.values[key]
	if !ok {
		err = ErrNotFound
		return value, err
	}
	value = append([]byte(nil), stored...)
	return value, err
}

// Set implements Backend. Values that are not valid JSON are stored as JSON strings.
func (b *FileBackend) Set(_ context.Context, key string, value []byte) (err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := json.RawMessage(append([]byte(nil), value...))
	if !json.Valid(stored) {
		stored, err = json.Marshal(string(value))
		if err != nil {
			err = errors.Wrapf(err, "failed to encode value for %s", key)
			return err
		}
	}

	previous, existed := b.values[key]
	b.values[key] = stored

	err = b.writeLocked()
	if err != nil {
		if existed {
			b.values[key] = previous
		} else {
			delete(b.values, key)
		}
	}
	return err
}

// Delete implements Backend.
func (b *FileBackend) Delete(_ context.Context, key string) (err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous, existed := b.values[key]
	if !existed {
		return err
	}
	delete(b.values, key)

	err = b.writeLocked()
	if err != nil {
		b.values[key] = previous
	}
	return err
}

// Close implements Backend.
func (b *FileBackend) Close() (err error) {
	return err
}

func (b *FileBackend) writeLocked() (err error) {
	var data []byte
	data, err = json.MarshalIndent(b.values, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to encode storage file")
		return err
	}

	tmp := b.path + ".tmp"
	err = os.WriteFile(tmp, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write storage file: %s", tmp)
		return err
	}

	err = os.Rename(tmp, b.path)
	if err != nil {
		_ = os.Remove(tmp)
		err = errors.Wrapf(err, "failed to replace storage file: %s", b.path)
		return err
	}

	return err
}
