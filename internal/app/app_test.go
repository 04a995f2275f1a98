package app

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/tasks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.Local)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.DesktopNotify = false
	return cfg
}

func openApp(t *testing.T, cfg *Config, lock bool) *App {
	t.Helper()
	a, err := New(cfg, Options{
		Lock:   lock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func titles(ns []model.Notification) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.Title)
	}
	return out
}

func TestWelcomeMessageOnce(t *testing.T) {
	cfg := testConfig(t)

	a := openApp(t, cfg, false)
	msgs := a.Messages.All()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Welcome to Kairo!", msgs[0].Subject)
	require.NoError(t, a.Close())

	again := openApp(t, cfg, false)
	assert.Len(t, again.Messages.All(), 1)
}

func TestSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t)
	openApp(t, cfg, true)

	_, err := New(cfg, Options{Lock: true, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	assert.True(t, errors.Is(err, ErrLocked))
}

func TestMutationTriggersRescan(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	due := a.Today().AddDays(-2)

	task, err := a.Tasks.Add(tasks.Draft{Kind: model.KindPersonal, ProjectName: "Taxes", DueDate: &due})
	require.NoError(t, err)

	all := a.Notifications.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Task Overdue", all[0].Title)
	assert.Equal(t, task.ID, all[0].TaskID)

	// A second scan does not duplicate the unread entry
	assert.Empty(t, a.Rescan())
}

func TestCompleteWithOutstandingPayment(t *testing.T) {
	a := openApp(t, testConfig(t), false)

	task, err := a.Tasks.Add(tasks.Draft{
		Kind:        model.KindClient,
		ClientName:  "Acme",
		ProjectName: "Branding",
		TotalAmount: "$200",
		AmountPaid:  "$50",
	})
	require.NoError(t, err)

	_, err = a.CompleteTask(task.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Payment Pending", "Task Completed"}, titles(a.Notifications.All()))

	_, err = a.RecordPayment(task.ID, "$200")
	require.NoError(t, err)
	assert.Contains(t, titles(a.Notifications.All()), "Payment Recorded")
}

func TestUpdatesToggle(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	_, err := a.UpdateSettings(func(s *model.Settings) { s.Notifications.Updates = false })
	require.NoError(t, err)

	task, err := a.Tasks.Add(tasks.Draft{Kind: model.KindPersonal, ProjectName: "Read"})
	require.NoError(t, err)
	_, err = a.CompleteTask(task.ID)
	require.NoError(t, err)

	assert.Empty(t, a.Notifications.All())
}

func TestSettingsPersist(t *testing.T) {
	cfg := testConfig(t)
	a := openApp(t, cfg, false)
	_, err := a.UpdateSettings(func(s *model.Settings) {
		s.UserName = "Ada"
		s.Theme = "green"
	})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	again := openApp(t, cfg, false)
	assert.Equal(t, "Ada", again.Settings().UserName)
	assert.Equal(t, "green", again.Settings().Theme)
}

func TestConfigThemeOverridesSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Theme = "pink"
	a := openApp(t, cfg, false)
	assert.Equal(t, "pink", a.Settings().Theme)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	cfg := testConfig(t)
	a := openApp(t, cfg, false)
	other := openApp(t, cfg, false)

	_, err := other.Tasks.Add(tasks.Draft{Kind: model.KindPersonal, ProjectName: "Gym"})
	require.NoError(t, err)
	assert.Empty(t, a.Tasks.All())

	require.NoError(t, a.Reload())
	assert.Len(t, a.Tasks.All(), 1)
}

func TestExportImport(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	fs := afero.NewMemMapFs()

	task, err := a.Tasks.Add(tasks.Draft{Kind: model.KindClient, ClientName: "Acme", ProjectName: "Site", TotalAmount: "₦1000"})
	require.NoError(t, err)

	doc, err := a.Export(fs, "/backup/kairo.json")
	require.NoError(t, err)
	assert.Equal(t, "₦1000", doc.Financial.Client.TotalRevenue)

	require.NoError(t, a.DeleteTask(task.ID))
	assert.Empty(t, a.Tasks.All())

	_, err = a.Import(fs, "/backup/kairo.json")
	require.NoError(t, err)
	got, err := a.Tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site", got.ProjectName)
	assert.Equal(t, model.KindClient, got.Kind)
}

func TestDeleteUnknownTask(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	assert.ErrorIs(t, a.DeleteTask(99), tasks.ErrNotFound)
}

func TestReloadKeepsTasksWithUnreadableDates(t *testing.T) {
	a := openApp(t, testConfig(t), false)

	require.NoError(t, a.DB.Put(tasks.ClientTasksKey, `[
		{"id":1,"clientName":"Acme","projectName":"keep me","status":"Started","priority":"Low"},
		{"id":2,"clientName":"Acme","projectName":"odd date","status":"Started","priority":"Low","dueDate":"2026/10/20"}
	]`))
	require.NoError(t, a.Reload())
	require.Len(t, a.Tasks.List(model.KindClient), 2)

	_, err := a.Tasks.Add(tasks.Draft{Kind: model.KindClient, ClientName: "Acme", ProjectName: "new"})
	require.NoError(t, err)

	var stored []model.Task
	ok, err := a.DB.Load(tasks.ClientTasksKey, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	var names []string
	for _, task := range stored {
		names = append(names, task.ProjectName)
	}
	assert.ElementsMatch(t, []string{"keep me", "odd date", "new"}, names)

	odd, err := a.Tasks.Get(2)
	require.NoError(t, err)
	assert.Nil(t, odd.DueDate)
}

func TestConcurrentRescansRaiseOnce(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	_, err := a.UpdateSettings(func(s *model.Settings) { s.Notifications.Upcoming = false })
	require.NoError(t, err)

	overdue := model.DateOf(testNow).AddDays(-2)
	_, err = a.Tasks.Add(tasks.Draft{Kind: model.KindPersonal, ProjectName: "Taxes", DueDate: &overdue})
	require.NoError(t, err)
	a.Notifications.Clear()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Rescan()
		}()
	}
	wg.Wait()

	var overdueCount int
	for _, n := range a.Notifications.All() {
		if n.Category == model.CategoryOverdue {
			overdueCount++
		}
	}
	assert.Equal(t, 1, overdueCount)
}

func TestImportWithoutSettingsKeepsReminders(t *testing.T) {
	a := openApp(t, testConfig(t), false)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/old.json", []byte(`{"version":"1","personalTasks":[{"id":3,"projectName":"Gym","status":"Started","priority":"Low"}]}`), 0o644))

	_, err := a.Import(fs, "/old.json")
	require.NoError(t, err)

	s := a.Settings()
	assert.Equal(t, model.DefaultSettings().Notifications, s.Notifications)
	assert.Equal(t, "blue", s.Theme)
	_, err = a.Tasks.Get(3)
	assert.NoError(t, err)
}
