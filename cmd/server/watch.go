package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events an editor save produces.
const reloadDebounce = 300 * time.Millisecond

// watch reloads the realiser whenever the lexicon file at path is
// written, created or renamed into place. The directory is watched
// rather than the file, since editors often replace files on save.
func (s *server) watch(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return err
	}
	s.log.Info("watching lexicon", "path", path)

	go func() {
		defer fw.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !isLexiconChange(event, path) {
					continue
				}
				s.log.Debug("lexicon event", "path", event.Name, "op", event.Op.String())
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				if err := s.reload(ctx); err != nil {
					s.log.Error("lexicon reload failed, keeping previous lexicon", "error", err)
				}

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", "error", err)
			}
		}
	}()
	return nil
}

func isLexiconChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
