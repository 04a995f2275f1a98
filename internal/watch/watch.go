// Package watch re-runs a scan whenever the database file changes and on a
// fixed interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reason says what triggered a scan
type Reason string

const (
	ReasonFileChange Reason = "file-change"
	ReasonTick       Reason = "tick"
	ReasonManual     Reason = "manual"
)

// DefaultDebounce collapses bursts of writes (sqlite touches the db and its
// WAL for one commit) into a single scan
const DefaultDebounce = 250 * time.Millisecond

// ScanFunc is called serially from the watcher loop
type ScanFunc func(ctx context.Context, reason Reason)

// Config configures a Watcher
type Config struct {
	// Path of the file to watch. Its directory is watched so WAL and journal
	// files count as changes too.
	Path string
	// Interval between periodic scans; zero disables the ticker
	Interval time.Duration
	// Debounce delay for file events; zero uses DefaultDebounce
	Debounce time.Duration
}

// Watcher drives a ScanFunc from file events and a ticker
type Watcher struct {
	cfg     Config
	scan    ScanFunc
	logger  *slog.Logger
	trigger chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates a watcher. Nothing is watched until Run is called.
func New(cfg Config, scan ScanFunc, logger *slog.Logger) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:     cfg,
		scan:    scan,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a scan from the running loop. Requests made while one is
// already pending are merged.
func (w *Watcher) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// relevant reports whether an event touches the watched file or its sqlite
// side files
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(ev.Name), filepath.Base(w.cfg.Path))
}

// Run blocks, scanning on every trigger, until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if w.cfg.Path != "" {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create fsnotify watcher: %w", err)
		}
		defer fsw.Close()
		if err := fsw.Add(filepath.Dir(w.cfg.Path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(w.cfg.Path), err)
		}
		events, errs = fsw.Events, fsw.Errors
	}

	var ticks <-chan time.Time
	if w.cfg.Interval > 0 {
		ticker := time.NewTicker(w.cfg.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	fire := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if debounce == nil {
				debounce = time.AfterFunc(w.cfg.Debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				debounce.Reset(w.cfg.Debounce)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			w.run(ctx, ReasonFileChange)
		case <-ticks:
			w.run(ctx, ReasonTick)
		case <-w.trigger:
			w.run(ctx, ReasonManual)
		}
	}
}

func (w *Watcher) run(ctx context.Context, reason Reason) {
	if ctx.Err() != nil {
		return
	}
	w.logger.Debug("rescan", "reason", reason)
	w.scan(ctx, reason)
}
