package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/tasks"
	"github.com/dori/kairo/internal/ui/theme"
)

// CompletedView lists finished tasks, most recently completed first
type CompletedView struct {
	app    *app.App
	width  int
	height int

	tasks         []model.Task
	today         model.Date
	cursor        int
	confirmDelete bool
}

type completedLoadedMsg struct {
	tasks []model.Task
	today model.Date
}

// NewCompletedView creates a new completed view
func NewCompletedView(a *app.App) CompletedView {
	return CompletedView{app: a}
}

// Init initializes the completed view
func (v CompletedView) Init() tea.Cmd {
	a := v.app
	return func() tea.Msg {
		done := a.Tasks.ByStatus(model.StatusCompleted)
		sort.SliceStable(done, func(i, j int) bool {
			return completedAt(done[i]) > completedAt(done[j])
		})
		return completedLoadedMsg{tasks: done, today: a.Today()}
	}
}

func completedAt(t model.Task) int64 {
	if t.CompletedAt == nil {
		return 0
	}
	return t.CompletedAt.UnixMilli()
}

// SetSize sets the view dimensions
func (v CompletedView) SetSize(width, height int) CompletedView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is waiting on a confirmation
func (v CompletedView) IsInputMode() bool {
	return v.confirmDelete
}

// Update handles messages
func (v CompletedView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case completedLoadedMsg:
		v.tasks = msg.tasks
		v.today = msg.today
		v.cursor = clampCursor(v.cursor, len(v.tasks))
		return v, nil

	case tea.KeyMsg:
		if v.confirmDelete {
			v.confirmDelete = false
			if msg.String() == "y" && v.cursor < len(v.tasks) {
				task := v.tasks[v.cursor]
				a := v.app
				return v, mutate(a, func() (string, error) {
					if err := a.DeleteTask(task.ID); err != nil {
						return "", err
					}
					return fmt.Sprintf("Deleted %q", task.Name()), nil
				})
			}
			return v, nil
		}

		switch msg.String() {
		case "j", "down":
			v.cursor = clampCursor(v.cursor+1, len(v.tasks))
		case "k", "up":
			v.cursor = clampCursor(v.cursor-1, len(v.tasks))
		case "u":
			if v.cursor < len(v.tasks) {
				task := v.tasks[v.cursor]
				a := v.app
				return v, mutate(a, func() (string, error) {
					status := model.StatusReview
					if _, err := a.UpdateTask(task.ID, tasks.Patch{Status: &status}); err != nil {
						return "", err
					}
					return fmt.Sprintf("Reopened %q for review", task.Name()), nil
				})
			}
		case "d":
			if len(v.tasks) > 0 {
				v.confirmDelete = true
			}
		}
	}
	return v, nil
}

// View renders the completed view
func (v CompletedView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Completed (%d)", len(v.tasks))))
	b.WriteString("\n")
	if v.confirmDelete && v.cursor < len(v.tasks) {
		b.WriteString(styles.TaskOverdue.Render(fmt.Sprintf("Delete %q? (y/n)", v.tasks[v.cursor].Name())))
		b.WriteString("\n")
	}
	if len(v.tasks) == 0 {
		b.WriteString(emptyState("No completed tasks yet."))
		return b.String()
	}

	start, end := scrollWindow(v.cursor, len(v.tasks), v.height-2)
	for i := start; i < end; i++ {
		task := v.tasks[i]
		line := renderTask(task, v.today, i == v.cursor, v.width-14)
		if task.CompletedAt != nil {
			line += styles.Label.Render(" " + task.CompletedAt.Local().Format("Jan 2 15:04"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
