// Package watcher reports writes to the collection database made by other
// processes. Bursts of writes are coalesced into one signal.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/switchboard/internal/log"
)

// DefaultDebounce is how long the database must stay quiet before a change
// is reported.
const DefaultDebounce = 500 * time.Millisecond

// Config selects the database file and the quiet period.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig watches dbPath with DefaultDebounce.
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, DebounceDur: DefaultDebounce}
}

// Watcher sends on its change channel once per burst of writes to the
// database file or its write-ahead log.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dbName   string
	dir      string
	debounce time.Duration

	changes  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	debounce := cfg.DebounceDur
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		dbName:   filepath.Base(cfg.DBPath),
		dir:      filepath.Dir(cfg.DBPath),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}, nil
}

// Start watches the database's directory, since SQLite replaces and
// creates files next to the database. The returned channel holds at most
// one pending signal.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsw.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "dir", w.dir, "db", w.dbName, "debounce", w.debounce)
	go w.run()
	return w.changes, nil
}

// Stop ends the watch. Calling it again is a no-op.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	// fire is nil while no write is waiting out the debounce.
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
				log.Debug(log.CatWatcher, "database changed", "db", w.dbName)
			default:
				// a signal is already pending
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watch error", "error", err)

		case <-w.stop:
			return
		}
	}
}

// relevant reports writes and creations of the database or its -wal file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(ev.Name)
	return name == w.dbName || name == w.dbName+"-wal"
}
