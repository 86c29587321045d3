package shader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// Watcher reports shader files that changed on disk. Its goroutine only
// forwards file names; reloading happens on the GL thread via Drain.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watch starts watching dir for writes and replacements.
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:     fsw,
		changed: make(chan string, 32),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()

	logger.Info("watching shaders", zap.String("dir", dir))
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changed <- filepath.Base(ev.Name):
			default:
				// Buffer full; Drain dedups so dropping a repeat is harmless.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("shader watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// Changed returns the channel of changed file names.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Drain returns the distinct file names changed since the last call without
// blocking.
func (w *Watcher) Drain() []string {
	var names []string
	seen := map[string]bool{}
	for {
		select {
		case name := <-w.changed:
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

// Close stops the watcher goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
