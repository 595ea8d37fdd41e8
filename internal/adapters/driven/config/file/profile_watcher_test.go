package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

func TestProfileWatcher_ReportsSaveAndDelete(t *testing.T) {
	store := NewProfileStore(t.TempDir())
	watcher := NewProfileWatcher(store)
	watcher.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.UserProfile, 8)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, func(p domain.UserProfile) { changes <- p })
	}()

	ada := domain.UserProfile{Name: "Ada", Email: "ada@example.com"}
	require.Eventually(t, func() bool {
		// Keep saving until the watcher is registered and reports it.
		_ = store.Save(ada)
		select {
		case p := <-changes:
			return p == ada
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	// Drain events from the retry loop before deleting.
	time.Sleep(100 * time.Millisecond)
	for len(changes) > 0 {
		<-changes
	}

	require.NoError(t, store.Delete())
	select {
	case p := <-changes:
		assert.True(t, p.IsGuest())
	case <-time.After(5 * time.Second):
		t.Fatal("delete was not reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestProfileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewProfileStore(dir)
	watcher := NewProfileWatcher(store)
	watcher.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	secrets := NewSecretStore(dir)
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = secrets.Write("gemini", testPayload(1))
	}()

	called := false
	require.NoError(t, watcher.Watch(ctx, func(domain.UserProfile) { called = true }))
	assert.False(t, called)
}
