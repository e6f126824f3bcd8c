package script

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the script file whenever it changes, until ctx is done.
// The watch is set up before Watch returns; reloading happens in the
// background. A script that fails to load is logged and the previous one
// stays in effect.
func (e *Evaluator) Watch(ctx context.Context) error {
	if e.path == "" {
		return ErrNotReloadable
	}
	target, err := filepath.Abs(e.path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors often save by renaming over the file.
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return err
	}

	go e.watchLoop(ctx, fsw, target)
	return nil
}

func (e *Evaluator) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, target string) {
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := e.Reload(); err != nil {
				e.logger.Warn("reload %s: %v", e.path, err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			e.logger.Warn("watching %s: %v", e.path, err)
		}
	}
}
