package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dori/kairo/internal/backup"
	"github.com/dori/kairo/internal/db"
	"github.com/dori/kairo/internal/inbox"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/notify"
	"github.com/dori/kairo/internal/tasks"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

// SettingsKey is the storage key of the user settings
const SettingsKey = "settings"

// ErrLocked is returned when another kairo instance holds the data directory
var ErrLocked = errors.New("another instance of kairo is already running")

// App holds the application state and dependencies
type App struct {
	Config        *Config
	DB            *db.DB
	Tasks         *tasks.Store
	Notifications *inbox.Notifications
	Messages      *inbox.Messages
	Notifier      *notify.Notifier
	Logger        *slog.Logger
	DataDir       string

	lockFile *flock.Flock
	logFile  io.Closer
	now      func() time.Time

	mu       sync.Mutex
	settings model.Settings

	// scanMu makes scanning the log and appending to it one step
	scanMu sync.Mutex
}

// Options controls how New opens the data directory
type Options struct {
	// Lock takes the single-instance lock. Long-running surfaces (TUI,
	// watcher) lock; one-shot commands do not.
	Lock bool
	// Logger overrides the file logger
	Logger *slog.Logger
	// Now overrides the clock
	Now func() time.Time
}

// New creates a new application instance
func New(cfg *Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		DataDir:  cfg.DataDir,
		Notifier: notify.NewNotifier(cfg.DesktopNotify),
		Logger:   opts.Logger,
		now:      opts.Now,
	}
	if app.now == nil {
		app.now = time.Now
	}
	if app.Logger == nil {
		logger, closer, err := NewLogger(cfg.DataDir, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Logger, app.logFile = logger, closer
	}

	if opts.Lock {
		if err := app.acquireLock(); err != nil {
			app.closeLog()
			return nil, err
		}
	}

	database, err := db.Open(cfg.DBPath(), app.Logger)
	if err != nil {
		app.releaseLock()
		app.closeLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Tasks = tasks.New(nil, nil, database, app.Logger)
	app.Tasks.SetClock(app.now)
	app.Notifications = inbox.NewNotifications(nil, database, app.Logger)
	app.Notifications.SetClock(app.now)
	app.Messages = inbox.NewMessages(nil, database, app.Logger)
	app.Messages.SetClock(app.now)
	app.Tasks.OnChange(func(model.Kind) { app.Rescan() })

	if err := app.Reload(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.onboard(); err != nil {
		app.Logger.Warn("onboarding failed", "error", err)
	}

	app.Logger.Info("kairo started", "data_dir", cfg.DataDir, "locked", opts.Lock)
	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "kairo.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("%s: %w", a.DataDir, ErrLocked)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

func (a *App) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// Reload reads every collection and the settings back from the database
// into memory without writing them again
func (a *App) Reload() error {
	client, err := loadOr[[]model.Task](a.DB, tasks.ClientTasksKey, nil)
	if err != nil {
		return err
	}
	personal, err := loadOr[[]model.Task](a.DB, tasks.PersonalTasksKey, nil)
	if err != nil {
		return err
	}
	notifications, err := loadOr[[]model.Notification](a.DB, inbox.NotificationsKey, nil)
	if err != nil {
		return err
	}
	messages, err := loadOr[[]model.Message](a.DB, inbox.MessagesKey, nil)
	if err != nil {
		return err
	}
	settings, err := loadOr(a.DB, SettingsKey, model.DefaultSettings())
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.settings = a.applyConfig(settings)
	a.mu.Unlock()

	a.Notifications.Reset(notifications)
	a.Messages.Reset(messages)
	a.Tasks.Reset(client, personal)
	return nil
}

// loadOr returns the value stored under key, or def when it is missing or
// malformed
func loadOr[T any](d *db.DB, key string, def T) (T, error) {
	v := def
	ok, err := d.Load(key, &v)
	if err != nil {
		return def, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func (a *App) applyConfig(s model.Settings) model.Settings {
	if a.Config.Theme != "" {
		s.Theme = a.Config.Theme
	}
	return s
}

// onboard sends the welcome message the first time a data directory is used
func (a *App) onboard() error {
	first, err := a.DB.FirstTimeUser()
	if err != nil || !first {
		return err
	}
	a.Messages.Welcome(a.Settings().UserName)
	return a.DB.MarkOnboarded()
}

// Today returns the current calendar date
func (a *App) Today() model.Date {
	return model.DateOf(a.now())
}

// Settings returns the current user settings
func (a *App) Settings() model.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// UpdateSettings applies fn to the settings and persists the result
func (a *App) UpdateSettings(fn func(*model.Settings)) (model.Settings, error) {
	a.mu.Lock()
	s := a.settings
	fn(&s)
	a.settings = s
	a.mu.Unlock()

	if err := a.DB.Save(SettingsKey, s); err != nil {
		return s, fmt.Errorf("failed to save settings: %w", err)
	}
	return s, nil
}

// Rescan runs the notification trigger over every task and appends what it
// raises to the log. New entries are pushed to the desktop and returned.
// Every task mutation triggers it.
func (a *App) Rescan() []model.Notification {
	settings := a.Settings()
	a.scanMu.Lock()
	fresh := notify.Scan(a.Tasks.All(), a.Notifications.All(), settings.Notifications, a.Today())
	stored := a.Notifications.Append(fresh...)
	a.scanMu.Unlock()
	for _, n := range stored {
		a.push(n)
	}
	if len(stored) > 0 {
		a.Logger.Info("raised notifications", "count", len(stored))
	}
	return stored
}

func (a *App) push(n model.Notification) {
	if err := a.Notifier.Push(n); err != nil {
		a.Logger.Warn("desktop notification failed", "title", n.Title, "error", err)
	}
}

// UpdateTask patches a task, recording an update notification when it
// becomes completed
func (a *App) UpdateTask(id int64, p tasks.Patch) (model.Task, error) {
	before, err := a.Tasks.Get(id)
	if err != nil {
		return before, err
	}
	t, err := a.Tasks.Update(id, p)
	if err != nil {
		return t, err
	}
	if !before.IsCompleted() && t.IsCompleted() {
		a.notifyUpdate(&t, model.CategoryCompleted, fmt.Sprintf("%q has been marked as completed", t.Name()))
	}
	return t, nil
}

// CompleteTask marks a task completed
func (a *App) CompleteTask(id int64) (model.Task, error) {
	status := model.StatusCompleted
	return a.UpdateTask(id, tasks.Patch{Status: &status})
}

// RecordPayment sets the amount paid on a task and records an update
// notification
func (a *App) RecordPayment(id int64, amountPaid string) (model.Task, error) {
	t, err := a.Tasks.RecordPayment(id, amountPaid)
	if err != nil {
		return t, err
	}
	a.notifyUpdate(&t, model.CategoryPaid, fmt.Sprintf("Payment of %s recorded for %q", t.Paid(), t.Name()))
	return t, nil
}

// DeleteTask removes a task
func (a *App) DeleteTask(id int64) error {
	t, err := a.Tasks.Get(id)
	if err != nil {
		return err
	}
	return a.Tasks.Delete(id, t.Kind)
}

func (a *App) notifyUpdate(t *model.Task, c model.Category, msg string) {
	if !a.Settings().Notifications.Updates {
		return
	}
	severity := model.SeverityInfo
	if c == model.CategoryCompleted {
		severity = model.SeveritySuccess
	}
	for _, n := range a.Notifications.Append(notify.ForTask(t, c, severity, msg)) {
		a.push(n)
	}
}

// Snapshot captures the current state for a backup
func (a *App) Snapshot() backup.Snapshot {
	return backup.Snapshot{
		ClientTasks:   a.Tasks.List(model.KindClient),
		PersonalTasks: a.Tasks.List(model.KindPersonal),
		Settings:      a.Settings(),
		Notifications: a.Notifications.All(),
		Messages:      a.Messages.All(),
	}
}

// Export writes a backup document to path
func (a *App) Export(fs afero.Fs, path string) (backup.Document, error) {
	doc := backup.Build(a.Snapshot(), a.now())
	if err := backup.Export(fs, path, doc); err != nil {
		return doc, err
	}
	a.Logger.Info("exported backup", "path", path, "id", doc.ID)
	return doc, nil
}

// Import replaces all state with a backup document in one transaction and
// reloads it into memory
func (a *App) Import(fs afero.Fs, path string) (backup.Document, error) {
	doc, err := backup.Import(fs, path)
	if err != nil {
		return doc, err
	}
	snap := doc.Snapshot()
	err = a.DB.SaveAll(map[string]any{
		tasks.ClientTasksKey:   snap.ClientTasks,
		tasks.PersonalTasksKey: snap.PersonalTasks,
		SettingsKey:            snap.Settings,
		inbox.NotificationsKey: snap.Notifications,
		inbox.MessagesKey:      snap.Messages,
	})
	if err != nil {
		return doc, fmt.Errorf("failed to store backup: %w", err)
	}
	if err := a.Reload(); err != nil {
		return doc, err
	}
	a.Logger.Info("imported backup", "path", path, "id", doc.ID)
	return doc, nil
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.closeLog()

	return errors.Join(errs...)
}
