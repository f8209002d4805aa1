package preview

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// debounceDelay coalesces the burst of writes a generator run produces into
// a single reload event.
const debounceDelay = 300 * time.Millisecond

// WatchAndReload watches dir recursively and broadcasts on the hub after
// changes settle. It returns when ctx is cancelled.
func WatchAndReload(ctx context.Context, dir string, hub *ReloadHub) error {
	return watchDirs(ctx, dir, debounceDelay, hub.Broadcast)
}

func watchDirs(ctx context.Context, dir string, delay time.Duration, notify func()) error {
	// The output directory may not exist yet on the first run; the generator
	// creates it, but the watcher needs something to attach to.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryPreview, "create watch root")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryPreview, "create file watcher")
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, dir); err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryPreview, "watch output directory")
	}

	var mu sync.Mutex
	var pending *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(delay, notify)
	}
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addDirsRecursive(watcher, ev.Name); err != nil {
						slog.Debug("watch new directory", logfields.Path(ev.Name), logfields.Error(err))
					}
				}
			}
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("output watcher", logfields.Error(err))
		}
	}
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnoreEvent filters hidden files and the temp/backup droppings that
// editors and atomic writers leave behind.
func shouldIgnoreEvent(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#") {
		return true
	}
	if strings.HasSuffix(name, "~") {
		return true
	}
	switch filepath.Ext(name) {
	case ".swp", ".swx", ".tmp":
		return true
	}
	return false
}
