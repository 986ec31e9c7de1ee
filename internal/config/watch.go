// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounceWindow coalesces the write bursts editors produce on save.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads the global config when the config file changes on disk.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the config file's directory. onReload is called
// after each successful reload; it may be nil. Watching the directory
// rather than the file survives the rename-on-save editors do.
func Watch(onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(Dir()); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.run(onReload)
	return w, nil
}

func (w *Watcher) run(onReload func(*Config)) {
	target := filepath.Base(DefaultPath())
	var timer *time.Timer

	reload := func() {
		if err := ReloadGlobal(); err != nil {
			log.Warn().Err(err).Msg("config reload failed, keeping previous config")
			return
		}
		log.Info().Msg("config reloaded")
		if onReload != nil {
			onReload(Global())
		}
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, reload)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
