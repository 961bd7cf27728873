// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/watch.go
// Summary: Watches the slices feed for changes and debounces them into
// rebuild notifications. A pending notification is superseded by the next
// change (last write wins), matching how resize rebuilds are coalesced.

package catalog

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the trailing delay before a change notification fires.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports (debounced) changes to a single feed file.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch begins watching path. onChange runs on the watcher goroutine after
// the debounce delay; hosts typically forward it to their event loop.
// The parent directory is watched rather than the file itself so that
// atomic replace-by-rename (the feed writer's idiom) is still observed.
func Watch(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch slices feed: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				onChange()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Printf("Catalog: watch error: %v", err)
			case <-w.done:
				return
			}
		}
	}()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
