package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadQuiet is how long the watched directories must stay quiet before a
// batch of edits is reported. Editors often write a file more than once.
const reloadQuiet = 100 * time.Millisecond

// Watcher reports edited prefab and script files in batches. Each value on
// Events is the sorted set of paths touched during one burst of edits.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan []string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan []string, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll merges every batch reported since the last call without blocking.
func (w *Watcher) Poll() []string {
	var out []string
	for {
		select {
		case batch, ok := <-w.Events:
			if !ok {
				return out
			}
			for _, name := range batch {
				if !slices.Contains(out, name) {
					out = append(out, name)
				}
			}
		default:
			slices.Sort(out)
			return out
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]struct{})
	quiet := time.NewTimer(reloadQuiet)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			quiet.Reset(reloadQuiet)
		case <-quiet.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			slices.Sort(batch)
			clear(pending)
			select {
			case w.Events <- batch:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
