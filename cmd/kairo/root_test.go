package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// kairoEnv isolates config, data and desktop notifications for one test
type kairoEnv struct {
	t       *testing.T
	dataDir string
}

func newEnv(t *testing.T) *kairoEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("KAIRO_DESKTOP_NOTIFY", "false")
	t.Setenv("KAIRO_THEME", "")
	return &kairoEnv{t: t, dataDir: t.TempDir()}
}

// run executes one command line against a fresh root command
func (e *kairoEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	c := &cli{v: viper.New(), out: &out, now: func() time.Time { return testNow }}
	cmd := buildRootCmd(c)
	cmd.SetArgs(append([]string{"--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *kairoEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

func firstID() string {
	return fmt.Sprint(testNow.UnixMilli())
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	assert.Contains(t, e.mustRun("version"), "kairo v"+version)
}

func TestAddAndList(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("add", "Logo design client:Acme @design !high due:tomorrow $1500")
	assert.Contains(t, out, "Created: Logo design")
	assert.Contains(t, out, "Client: Acme")
	assert.Contains(t, out, "Tags: design")

	e.mustRun("add", "--personal", "Renew passport #admin")

	out = e.mustRun("list")
	assert.Contains(t, out, "Logo design")
	assert.Contains(t, out, "Renew passport")

	out = e.mustRun("list", "--kind", "personal")
	assert.Contains(t, out, "Renew passport")
	assert.NotContains(t, out, "Logo design")

	_, err := e.run("list", "--kind", "work")
	assert.ErrorContains(t, err, "unknown kind")
}

func TestAddRejectsEmptyName(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("add", "@only-a-tag")
	assert.Error(t, err)
}

func TestEditAndDone(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Website client:Beta due:2026-03-20")

	out := e.mustRun("edit", firstID(), "--status", "review", "--due", "none", "--tag", "web", "--tag", "seo")
	assert.Contains(t, out, "Status: Review (70%)")
	assert.NotContains(t, out, "Due:")
	assert.Contains(t, out, "Tags: web, seo")

	_, err := e.run("edit", firstID(), "--priority", "extreme")
	assert.ErrorContains(t, err, "unknown priority")

	out = e.mustRun("done", firstID())
	assert.Contains(t, out, "Completed: Website")
	out = e.mustRun("done", firstID())
	assert.Contains(t, out, "already completed")

	out = e.mustRun("inbox")
	assert.Contains(t, out, "Task Completed")
}

func TestPayAndFinance(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Brand kit client:Acme $2000")

	out := e.mustRun("pay", firstID(), "500")
	assert.Contains(t, out, "$500.00 of $2,000.00 paid, $1,500.00 outstanding (25%)")

	out = e.mustRun("finance", "--kind", "client")
	assert.Contains(t, out, "$2,000.00")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "25%")

	e.mustRun("add", "Side project client:Solo")
	_, err := e.run("pay", fmt.Sprint(testNow.UnixMilli()+1), "100")
	assert.ErrorContains(t, err, "has no total amount")
}

func TestDueAndScan(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Late invoice client:Acme due:2026-03-01")
	e.mustRun("add", "Soon report client:Acme due:2026-03-12")

	out := e.mustRun("due")
	assert.Contains(t, out, "Overdue (1)")
	assert.Contains(t, out, "Due soon (1)")

	// Adding already scanned, so nothing new is raised
	out = e.mustRun("scan")
	assert.Contains(t, out, "No new notifications.")

	out = e.mustRun("inbox", "--unread")
	assert.Contains(t, out, "Task Overdue")
	assert.Contains(t, out, "Task Due Soon")

	e.mustRun("inbox", "--read-all")
	out = e.mustRun("inbox", "--unread")
	assert.Contains(t, out, "Inbox is empty.")
}

func TestRemove(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Throwaway client:Acme")

	assert.Contains(t, e.mustRun("rm", firstID()), "Deleted: Throwaway")
	assert.Contains(t, e.mustRun("list"), "No tasks.")

	_, err := e.run("rm", firstID())
	assert.Error(t, err)
	_, err = e.run("rm", "abc")
	assert.ErrorContains(t, err, "invalid task id")
}

func TestMessagesWelcome(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("messages")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "Welcome")

	e.mustRun("messages", "--read-all")
	assert.NotContains(t, e.mustRun("messages"), "*")
}

func TestSettings(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("settings", "--theme", "purple", "--name", "Ada", "--payments=false")
	assert.Contains(t, out, "purple")
	assert.Contains(t, out, "Ada")

	out = e.mustRun("settings")
	assert.Contains(t, out, "purple")
	assert.Regexp(t, `payment alerts\s*│\s*off`, out)

	_, err := e.run("settings", "--theme", "neon")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestExportImport(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Keep me client:Acme $300")
	path := filepath.Join(t.TempDir(), "backup.yaml")

	assert.Contains(t, e.mustRun("export", path), "Exported 1 client and 0 personal tasks")

	e.mustRun("rm", firstID())
	assert.Contains(t, e.mustRun("import", path), "Imported 1 client and 0 personal tasks")
	assert.Contains(t, e.mustRun("list"), "Keep me")
}

func TestUnknownView(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("--view", "kanban")
	assert.ErrorContains(t, err, "unknown view")
}
