package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect() (ScanFunc, <-chan Reason) {
	reasons := make(chan Reason, 16)
	return func(_ context.Context, r Reason) {
		select {
		case reasons <- r:
		default:
		}
	}, reasons
}

func waitFor(t *testing.T, reasons <-chan Reason, want Reason) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-reasons:
			if r == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s scan", want)
		}
	}
}

func start(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancelCtx()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop after cancel")
		}
	}
}

func TestTickerScans(t *testing.T) {
	scan, reasons := collect()
	w := New(Config{Interval: 10 * time.Millisecond}, scan, nil)
	stop := start(t, w)
	defer stop()

	waitFor(t, reasons, ReasonTick)
	waitFor(t, reasons, ReasonTick)
}

func TestManualTrigger(t *testing.T) {
	scan, reasons := collect()
	w := New(Config{}, scan, nil)
	stop := start(t, w)
	defer stop()

	w.Trigger()
	w.Trigger()
	waitFor(t, reasons, ReasonManual)
}

func TestFileChangeScans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kairo.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	scan, reasons := collect()
	w := New(Config{Path: path, Debounce: 20 * time.Millisecond}, scan, nil)
	stop := start(t, w)
	defer stop()

	// Give the loop a moment to register the directory watch
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path+"-wal", []byte("commit"), 0o644))

	waitFor(t, reasons, ReasonFileChange)
}

func TestUnrelatedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kairo.db")

	scan, reasons := collect()
	w := New(Config{Path: path, Debounce: 10 * time.Millisecond}, scan, nil)
	stop := start(t, w)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kairo.log"), []byte("line"), 0o644))
	time.Sleep(100 * time.Millisecond)
	stop()

	assert.Empty(t, reasons)
}

func TestRunTwiceFails(t *testing.T) {
	scan, reasons := collect()
	w := New(Config{}, scan, nil)
	stop := start(t, w)
	defer stop()

	// Wait until the first Run holds the loop
	w.Trigger()
	waitFor(t, reasons, ReasonManual)

	assert.Error(t, w.Run(context.Background()))
}
