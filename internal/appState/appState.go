package appState

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mredig/fingerstring-mcp/internal/config"
	"github.com/mredig/fingerstring-mcp/internal/repository/sqlite"
	"github.com/mredig/fingerstring-mcp/internal/tool"
	"github.com/mredig/fingerstring-mcp/internal/tools"
)

// ErrClosed is returned by Store once Cleanup has run.
var ErrClosed = errors.New("application state already cleaned up")

// App holds the global application state
type App struct {
	Config    *config.ConfigSchema
	Effective *config.Config
	Logger    *slog.Logger
	closer    io.Closer // For cleanup of resources like log files

	storeOnce sync.Once
	store     *sqlite.Store
	storeErr  error
}

var (
	globalApp *App
	initOnce  sync.Once
	initErr   error
	mu        sync.RWMutex
)

// Initialize creates the global app instance with the given overrides
func Initialize(overrides *config.RuntimeOverrides) error {
	initOnce.Do(func() {
		cfg, err := config.New(config.WithOverrides(overrides))
		if err != nil {
			initErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		logger, closer, err := setupLogger(cfg.Schema().Log)
		if err != nil {
			initErr = fmt.Errorf("failed to setup logger: %w", err)
			return
		}

		for _, key := range cfg.UnknownKeys() {
			logger.Warn("Unknown configuration key", "key", key)
		}

		mu.Lock()
		globalApp = &App{
			Config:    cfg.Schema(),
			Effective: cfg,
			Logger:    logger,
			closer:    closer,
		}
		mu.Unlock()

		slog.SetDefault(logger)
	})
	return initErr
}

// Get returns the global app instance and panics if not initialized
func Get() *App {
	mu.RLock()
	defer mu.RUnlock()

	if globalApp == nil {
		panic("app not initialized")
	}
	return globalApp
}

// TryGet returns the global app instance and a boolean indicating if it's initialized
func TryGet() (*App, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return globalApp, globalApp != nil
}

// Store opens the list store on first use.
func (a *App) Store() (*sqlite.Store, error) {
	a.storeOnce.Do(func() {
		a.Logger.Debug("Opening store", "path", a.Config.Database.Path)
		a.store, a.storeErr = sqlite.Initialize(a.Config.Database.Path, a.Config.Store.PageSize)
		if a.storeErr != nil {
			a.storeErr = fmt.Errorf("failed to open store: %w", a.storeErr)
		}
	})
	return a.store, a.storeErr
}

// Registry opens the store and publishes every tool bound to it.
func (a *App) Registry() (*tool.Registry, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}

	registry := tool.NewRegistry(a.Logger)
	if err := tools.Register(registry, store); err != nil {
		return nil, err
	}
	return registry, nil
}

// Cleanup closes the store and the log file, in that order.
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if globalApp == nil {
		return nil
	}

	var firstErr error
	if globalApp.store != nil {
		if err := globalApp.store.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close store: %w", err)
		}
		globalApp.store = nil
	}
	// Consume the once so a later Store call does not reopen the database.
	globalApp.storeOnce.Do(func() {})
	globalApp.storeErr = ErrClosed
	if globalApp.closer != nil {
		if err := globalApp.closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		globalApp.closer = nil
	}
	return firstErr
}

func parseLevel(name string) slog.Level {
	switch name {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.LogLevel),
		AddSource: true,
	}

	if cfg.LogFile == "" {
		// stdout carries the MCP protocol
		handler := slog.NewTextHandler(os.Stderr, opts)
		return slog.New(handler), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, opts)
	return slog.New(handler), file, nil
}
