package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/ui/theme"
)

// DueView lists overdue tasks followed by tasks due within three days
type DueView struct {
	app    *app.App
	width  int
	height int

	overdue []model.Task
	dueSoon []model.Task
	today   model.Date
	cursor  int
}

type dueLoadedMsg struct {
	overdue []model.Task
	dueSoon []model.Task
	today   model.Date
}

// NewDueView creates a new due view
func NewDueView(a *app.App) DueView {
	return DueView{app: a}
}

// Init initializes the due view
func (v DueView) Init() tea.Cmd {
	a := v.app
	return func() tea.Msg {
		return dueLoadedMsg{overdue: a.Tasks.Overdue(), dueSoon: a.Tasks.DueSoon(), today: a.Today()}
	}
}

// SetSize sets the view dimensions
func (v DueView) SetSize(width, height int) DueView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is in input mode
func (v DueView) IsInputMode() bool {
	return false
}

func (v DueView) items() []model.Task {
	return append(append([]model.Task(nil), v.overdue...), v.dueSoon...)
}

// Update handles messages
func (v DueView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dueLoadedMsg:
		v.overdue = msg.overdue
		v.dueSoon = msg.dueSoon
		v.today = msg.today
		v.cursor = clampCursor(v.cursor, len(v.overdue)+len(v.dueSoon))
		return v, nil

	case tea.KeyMsg:
		items := v.items()
		switch msg.String() {
		case "j", "down":
			v.cursor = clampCursor(v.cursor+1, len(items))
		case "k", "up":
			v.cursor = clampCursor(v.cursor-1, len(items))
		case "x", "tab":
			if v.cursor < len(items) {
				task := items[v.cursor]
				a := v.app
				return v, mutate(a, func() (string, error) {
					if _, err := a.CompleteTask(task.ID); err != nil {
						return "", err
					}
					return fmt.Sprintf("Completed %q", task.Name()), nil
				})
			}
		}
	}
	return v, nil
}

// View renders the due view
func (v DueView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var sections []string

	overdueTitle := lipgloss.NewStyle().Bold(true).Foreground(t.Error).
		Render(fmt.Sprintf("Overdue (%d)", len(v.overdue)))
	sections = append(sections, overdueTitle)
	if len(v.overdue) == 0 {
		sections = append(sections, emptyState("Nothing overdue."))
	}
	for i, task := range v.overdue {
		sections = append(sections, renderTask(task, v.today, i == v.cursor, v.width))
	}

	sections = append(sections, "")
	sections = append(sections, styles.Subtitle.Render(fmt.Sprintf("Due Soon (%d)", len(v.dueSoon))))
	if len(v.dueSoon) == 0 {
		sections = append(sections, emptyState("Nothing due in the next three days."))
	}
	for i, task := range v.dueSoon {
		sections = append(sections, renderTask(task, v.today, len(v.overdue)+i == v.cursor, v.width))
	}

	return strings.Join(sections, "\n")
}
