package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile calls render once and again each time file changes, until ctx is
// done. Render failures are logged so an editor save with a typo does not end
// the session.
func watchFile(ctx context.Context, file string, log *slog.Logger, render func() error) error {
	w, err := newFileWatcher(file)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	rerender(ctx, log, file, render)
	watchLoop(ctx, w, file, log, func() { rerender(ctx, log, file, render) })
	return nil
}

// newFileWatcher watches the directory holding file. Editors commonly replace
// a file on save, which drops a watch placed on the file itself.
func newFileWatcher(file string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(file)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", file, err)
	}
	return w, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, file string, log *slog.Logger, changed func()) {
	target := filepath.Clean(file)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.WarnContext(ctx, "watch.error", slog.String("err", err.Error()))
		}
	}
}

func rerender(ctx context.Context, log *slog.Logger, file string, render func() error) {
	if err := render(); err != nil {
		log.ErrorContext(ctx, "watch.render_failed", slog.String("file", file), slog.String("err", err.Error()))
		return
	}
	log.InfoContext(ctx, "watch.rendered", slog.String("file", file))
}
