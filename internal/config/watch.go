package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/xtding233/idle-balance/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches tuning directories and triggers a callback when a YAML
// file in them changes. Directories are watched rather than files so
// atomic-rename saves are seen.
type FileWatcher struct {
	Dirs     []string
	Debounce time.Duration

	log      logr.Logger
	onChange func(string) // called with path that changed
	fsw      *fsnotify.Watcher
	stopCh   chan struct{}
	done     chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once

	mu      sync.Mutex
	started bool
	pending map[string]*time.Timer
}

// NewFileWatcher creates a watcher for the given directories. Directories
// that do not exist are skipped with a log line.
func NewFileWatcher(log logr.Logger, dirs []string, onChange func(string)) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatcher{
		Debounce: DefaultDebounce,
		log:      log,
		onChange: onChange,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			log.Info("Not watching tuning directory", "dir", d, "reason", err.Error())
			continue
		}
		w.Dirs = append(w.Dirs, d)
	}
	return w, nil
}

// WatchLoader watches the loader's default and scenario directories.
func WatchLoader(log logr.Logger, l *Loader, onChange func(string)) (*FileWatcher, error) {
	p := l.Paths()
	return NewFileWatcher(log, []string{p.TuningDir(), p.ScenarioDir()}, onChange)
}

// Start begins watching in a goroutine. Later calls do nothing.
func (w *FileWatcher) Start() {
	w.startOnce.Do(w.start)
}

func (w *FileWatcher) start() {
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				w.log.V(logging.DEBUG).Info("Tuning file event", "path", ev.Name, "op", ev.Op.String())
				w.schedule(ev.Name)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.Error(err, "Tuning watcher error")
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher and drops pending callbacks. It is safe to
// call more than once, and without a prior Start.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(w.stop)
}

func (w *FileWatcher) stop() {
	close(w.stopCh)
	_ = w.fsw.Close()
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for p, t := range w.pending {
		t.Stop()
		delete(w.pending, p)
	}
}

func (w *FileWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(w.Debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case <-w.stopCh:
			return
		default:
		}
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	return ext == ".yaml" || ext == ".yml"
}
