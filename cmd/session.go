package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/logging"
	"github.com/nikogura/resume-builder/pkg/workspace"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// commandTimeout bounds a single command, including the final flush.
const commandTimeout = 30 * time.Second

//nolint:gochecknoglobals // Terminal styles
var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	keyColor   = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.Faint)
	titleColor = color.New(color.Bold)
)

// session is one command's view of the stored workspace.
type session struct {
	cfg    config.Config
	ws     *workspace.Workspace
	logger *zap.Logger
}

// loadConfig reads the config and builds the logger for it.
func loadConfig() (cfg config.Config, logger *zap.Logger, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, logger, err
	}

	logger, err = logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: getVerbose(),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to set up logging")
		return cfg, logger, err
	}
	return cfg, logger, err
}

// openSession loads the config and opens the stored workspace.
func openSession(ctx context.Context) (s *session, err error) {
	var cfg config.Config
	var logger *zap.Logger
	cfg, logger, err = loadConfig()
	if err != nil {
		return s, err
	}

	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Storage: %s", cfg.Storage.Backend)
		if cfg.Storage.Backend == config.BackendFile {
			fmt.Fprintf(os.Stderr, " (%s)", cfg.Storage.Path)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Remote storage can take a moment to answer.
	var connecting *spinner
	if cfg.Storage.Backend == config.BackendRedis && !getVerbose() {
		connecting = newSpinner("Connecting to redis...")
		connecting.start()
	}

	var ws *workspace.Workspace
	ws, err = workspace.FromConfig(ctx, cfg, logger)
	if connecting != nil {
		connecting.stopSpinner()
	}
	if err != nil {
		_ = logger.Sync()
		err = errors.Wrap(err, "failed to open workspace")
		return s, err
	}

	s = &session{cfg: cfg, ws: ws, logger: logger}
	return s, err
}

// close flushes pending writes and releases storage.
func (s *session) close(ctx context.Context) (err error) {
	err = s.ws.Close(ctx)
	_ = s.logger.Sync()
	return err
}

// withSession runs fn against an open session and always closes it, reporting
// the first error.
func withSession(fn func(ctx context.Context, s *session) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var s *session
	s, err = openSession(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, s)
	closeErr := s.close(ctx)
	if err == nil {
		err = closeErr
	}
	return err
}

// spinner provides a simple text-based progress indicator on stderr.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprintf(os.Stderr, "%s ", s.message)
		for {
			select {
			case <-s.stop:
				fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
