package file

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// Ensure ProfileWatcher implements the interface.
var _ driven.ProfileWatcher = (*ProfileWatcher)(nil)

// DefaultDebounceInterval coalesces the burst of events an atomic
// rename produces into a single reload.
const DefaultDebounceInterval = 200 * time.Millisecond

// ProfileWatcher reports changes to profile.json.
// The directory is watched rather than the file, because atomic writes
// replace the file and deletes remove it.
type ProfileWatcher struct {
	store    *ProfileStore
	debounce time.Duration
}

// NewProfileWatcher creates a watcher for the store's profile file.
func NewProfileWatcher(store *ProfileStore) *ProfileWatcher {
	return &ProfileWatcher{store: store, debounce: DefaultDebounceInterval}
}

// Watch calls onChange with the current profile (the guest profile after
// logout) each time profile.json changes. It blocks until ctx is done.
func (w *ProfileWatcher) Watch(ctx context.Context, onChange func(domain.UserProfile)) error {
	if err := w.store.EnsureDir(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.store.dir); err != nil {
		return err
	}
	logger.Debug("Watching %s", w.store.Path())

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != ProfileFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(w.current())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Profile watcher error: %v", err)
		}
	}
}

func (w *ProfileWatcher) current() domain.UserProfile {
	profile, err := w.store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Unreadable profile: %v", err)
		}
		return domain.GuestProfile()
	}
	return *profile
}
