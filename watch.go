package main

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce swallows the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// RoomWatcher reports changed room files and room scripts in a directory.
type RoomWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan fsnotify.Event
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewRoomWatcher(dirs ...string) (*RoomWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &RoomWatcher{
		watcher: w,
		Events:  make(chan fsnotify.Event, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *RoomWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *RoomWatcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// Editors save in several steps (truncate, write, chmod). An event is
	// only passed on once its file has been quiet for watchDebounce.
	pending := make(map[string]fsnotify.Event)
	timers := make(map[string]*time.Timer)
	fired := make(chan string)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if t, ok := timers[event.Name]; ok {
					t.Stop()
					delete(timers, event.Name)
					delete(pending, event.Name)
				}
				if !w.send(event) {
					return
				}
				continue
			}
			pending[event.Name] = event
			if t, ok := timers[event.Name]; ok {
				t.Reset(watchDebounce)
				continue
			}
			name := event.Name
			timers[name] = time.AfterFunc(watchDebounce, func() {
				select {
				case fired <- name:
				case <-w.closeCh:
				}
			})
		case name := <-fired:
			event, ok := pending[name]
			delete(pending, name)
			delete(timers, name)
			if ok && !w.send(event) {
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

func (w *RoomWatcher) send(event fsnotify.Event) bool {
	select {
	case w.Events <- event:
		return true
	case <-w.closeCh:
		return false
	}
}

func isWatchedFile(path string) bool {
	return isRoomFile(path) || isScriptFile(path)
}

// ApplyRoomEvents keeps registry in sync with the watched room files until
// the watcher closes.
func ApplyRoomEvents(w *RoomWatcher, registry *RoomRegistry) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if isScriptFile(event.Name) {
				registry.ReloadScript(event.Name)
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				registry.RemoveSource(event.Name)
				continue
			}
			if err := registry.Reload(event.Name); err != nil {
				log.Printf("⚠️  Failed to reload %s: %v\n", event.Name, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  Room watcher: %v\n", err)
		}
	}
}
