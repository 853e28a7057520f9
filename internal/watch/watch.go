// Package watch notifies callers when a directory of calendar-stream files
// changes, so a long-running shim can re-run merge_availability without
// polling. It debounces bursty filesystem activity into a single signal.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StreamWatch notifies on changes to *.streams.json files under a root.
type StreamWatch struct {
	root     string
	debounce time.Duration
}

// New creates a watcher rooted at root, recursively watching for changes to
// files matching "*.streams.json". If debounce is <= 0, it defaults to
// 250ms.
func New(root string, debounce time.Duration) *StreamWatch {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &StreamWatch{root: root, debounce: debounce}
}

// Changes starts watching w.root recursively and returns a channel that
// emits a signal whenever a relevant *.streams.json file is created,
// written, renamed, or removed. The channel closes when ctx is canceled or
// the watcher fails to start.
func (w *StreamWatch) Changes(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)

		if err := os.MkdirAll(w.root, 0o755); err != nil {
			log.Printf("stream watch: unable to ensure root %s: %v", w.root, err)
			return
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Printf("stream watch: new watcher error: %v", err)
			return
		}
		defer watcher.Close()

		if err := addWatchRecursive(watcher, w.root); err != nil {
			log.Printf("stream watch: initial add recursive error: %v", err)
		}

		var (
			timer   *time.Timer
			pending bool
		)
		trigger := func() {
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true
		}
		notify := func() {
			select {
			case out <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create && isDir(ev.Name) {
					if err := addWatchRecursive(watcher, ev.Name); err != nil {
						log.Printf("stream watch: add recursive on create %s: %v", ev.Name, err)
					}
					continue
				}
				if !isStreamFile(ev.Name) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod|fsnotify.Create) != 0 {
					trigger()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("stream watch: watcher error: %v", err)

			case <-func() <-chan time.Time {
				if timer == nil {
					return nil
				}
				return timer.C
			}():
				if pending {
					notify()
					pending = false
				}
			}
		}
	}()

	return out
}

func isStreamFile(path string) bool {
	return strings.HasSuffix(path, ".streams.json")
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				log.Printf("stream watch: add %s error: %v", path, err)
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
