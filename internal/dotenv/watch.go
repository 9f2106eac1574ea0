package dotenv

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path into the store every time it is written, created or
// renamed into place, until ctx is done. The parent directory is watched so
// editors that replace the file atomically are seen too.
//
// A reload is Release followed by Load, so readers may briefly observe an
// empty store. onReload, when non-nil, is called after each reload attempt.
func (e *Env) Watch(ctx context.Context, path string, onReload func(Stats, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("env file changed", "path", path, "op", ev.Op.String())
			e.Release()
			st, err := e.LoadFile(path)
			if onReload != nil {
				onReload(st, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "path", path, "err", err)
		}
	}
}
