package resources

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events a deploy produces into a
// single reload.
const debounceWindow = time.Millisecond * 500

func watchDir(directory string, callback func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = watcher.Add(directory)
	if err != nil {
		return err
	}

	reload := make(chan struct{})
	go debounceReload(reload, callback)
	go forwardEvents(watcher, reload)
	return nil
}

func forwardEvents(watcher *fsnotify.Watcher, reload chan<- struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write | fsnotify.Remove | fsnotify.Create) {
				reload <- struct{}{}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("page watcher error: %v\n", err)
		}
	}
}

func debounceReload(reload <-chan struct{}, callback func()) {
	var timer *time.Timer = nil
	var c <-chan time.Time = nil
	for {
		select {
		case <-reload:
			if timer != nil {
				timer.Reset(debounceWindow)
			} else {
				timer = time.NewTimer(debounceWindow)
				c = timer.C
			}

		case <-c:
			c = nil
			timer = nil
			callback()
		}
	}
}
