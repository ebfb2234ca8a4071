package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// defaultDebounce is how long the watcher waits for more changes before
// regenerating.
const defaultDebounce = 200 * time.Millisecond

// Watcher regenerates output whenever Go sources under the module root change.
type Watcher struct {
	cfg       *Config
	gen       *Generator
	gitignore []GitignorePattern
	logger    *zap.Logger
	debounce  time.Duration
	patterns  []string

	// runs receives the outcome of every generation pass, if set.
	runs chan<- error
}

// NewWatcher creates a watcher that runs gen with patterns.
func NewWatcher(cfg *Config, gen *Generator, logger *zap.Logger, patterns ...string) *Watcher {
	return &Watcher{
		cfg:       cfg,
		gen:       gen,
		gitignore: LoadGitignore(cfg.Root),
		logger:    logger,
		debounce:  defaultDebounce,
		patterns:  patterns,
	}
}

// Run generates once, then again after each burst of changes, until ctx
// is done. Generation errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.cfg.Root); err != nil {
		return err
	}
	w.logger.Info("watching for changes",
		zap.String("root", w.cfg.Root),
		zap.Duration("debounce", w.debounce))

	w.generate()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(fsw, event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-timer.C:
			w.generate()
		}
	}
}

// handle reports whether event should trigger regeneration.
func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	path := event.Name

	if !strings.HasSuffix(path, ".go") {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := w.addRecursive(fsw, path); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("path", path), zap.Error(err))
				}
				return true
			}
		}
		return false
	}

	// Our own writes.
	if filepath.Base(path) == w.cfg.Output {
		return false
	}

	w.logger.Debug("file change detected",
		zap.String("path", path),
		zap.String("op", event.Op.String()))
	return true
}

func (w *Watcher) generate() {
	res, err := w.gen.Run(w.patterns...)
	if err != nil {
		w.logger.Error("generation failed", zap.Error(err))
	} else {
		w.logger.Info("generated",
			zap.Int("packages", res.Packages),
			zap.Int("types", res.Types),
			zap.Int("written", res.Written),
			zap.Int("removed", res.Removed))
	}
	if w.runs != nil {
		w.runs <- err
	}
}

// addRecursive watches dir and its subdirectories, skipping hidden,
// vendor, testdata and gitignored ones.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		if path != w.cfg.Root {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			if rel, err := filepath.Rel(w.cfg.Root, path); err == nil && IsGitignored(rel, w.gitignore) {
				return filepath.SkipDir
			}
		}

		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.logger.Debug("watching directory", zap.String("path", path))
		return nil
	})
}
