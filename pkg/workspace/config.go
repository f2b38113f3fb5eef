package workspace

import (
	"context"

	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/locale"
	"github.com/nikogura/resume-builder/pkg/persist"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// OpenBackend creates the storage backend selected by cfg.
func OpenBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (backend persist.Backend, err error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		backend, err = persist.NewFileBackend(cfg.Storage.Path, logger)
	case config.BackendMemory:
		backend = persist.NewMemoryBackend()
	case config.BackendRedis:
		backend, err = persist.NewRedisBackend(ctx, cfg.Storage.RedisURL, cfg.Storage.KeyPrefix)
	default:
		err = errors.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return backend, err
}

// Translator builds the export translator selected by cfg.
func Translator(cfg config.Config) (tr *locale.Table, err error) {
	catalog := locale.Builtin()
	if cfg.Locale.CatalogPath != "" {
		catalog, err = locale.LoadCatalog(cfg.Locale.CatalogPath)
		if err != nil {
			return tr, err
		}
	}
	tr = locale.New(catalog, cfg.Locale.Language)
	return tr, err
}

// FromConfig opens a workspace using the backend, debounce and locale in cfg.
func FromConfig(ctx context.Context, cfg config.Config, logger *zap.Logger) (ws *Workspace, err error) {
	var tr *locale.Table
	tr, err = Translator(cfg)
	if err != nil {
		return ws, err
	}

	var backend persist.Backend
	backend, err = OpenBackend(ctx, cfg, logger)
	if err != nil {
		err = errors.Wrap(err, "failed to open storage")
		return ws, err
	}

	ws, err = Open(ctx, Options{
		Backend:    backend,
		Debounce:   cfg.Debounce(),
		Translator: tr,
		Logger:     logger,
	})
	if err != nil {
		_ = backend.Close()
		return ws, err
	}
	return ws, err
}
