// Package input supplies the viewer's two non-keyboard input sources: a
// file-change watcher for the open Markdown file, and a stdin reader for
// piped input.
package input

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher notifies on writes to a single file. It watches the file's
// parent directory rather than the file itself: Linux inotify loses its
// watch across an atomic rename-based save (the common pattern for
// editors and `go build`-style tools), so the directory is watched and
// events are filtered down to the one file by exact path.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changed chan struct{}
	done    chan struct{}
}

// NewFileWatcher starts watching path's parent directory for writes to
// path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		// The file may not exist yet under its final name during an
		// editor's write; fall back to the un-resolved absolute path.
		abs, _ = filepath.Abs(path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &FileWatcher{watcher: w, path: abs, changed: make(chan struct{}, 1), done: make(chan struct{})}
	go fw.run()
	return fw, nil
}

func (fw *FileWatcher) run() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != fw.path {
				continue
			}
			select {
			case fw.changed <- struct{}{}:
			default:
			}
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// HasChanged reports, and clears, whether the file changed since the
// last call. The notification channel is buffered to size 1 with a
// non-blocking send, so however many writes landed in between collapse
// into one pending notification here.
func (fw *FileWatcher) HasChanged() bool {
	select {
	case <-fw.changed:
		return true
	default:
		return false
	}
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
