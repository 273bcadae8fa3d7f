package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/config"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/logging"
	"github.com/aircanvas/aircanvas/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a structured logger from the loaded configuration. Commands
// whose stdout is the payload (tables, TUI) keep logging on stderr via slog's
// default writer.
func (c *commandContext) logger() logging.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NoOpLogger{}
	}
	return logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, false)
}

// store opens the file-backed session store at the configured directory.
func (c *commandContext) store() (*session.FileStore, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(cfg.Storage.SessionsDir)
}

// loadSession resolves a command argument to a session: an existing file path
// is imported with the codec, anything else is treated as a store id.
func (c *commandContext) loadSession(arg string) (*core.RecordingSession, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read session file: %w", err)
		}
		return codec.ImportSession(data)
	}

	store, err := c.store()
	if err != nil {
		return nil, err
	}
	s, err := store.Get(arg)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", arg, err)
	}
	return s, nil
}
