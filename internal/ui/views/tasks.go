package views

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/quickadd"
	"github.com/dori/kairo/internal/tasks"
	"github.com/dori/kairo/internal/ui/theme"
)

// TasksMode represents the current interaction mode of the task list
type TasksMode int

const (
	TasksModeNormal TasksMode = iota
	TasksModeAdd
	TasksModePay
	TasksModeSearch
	TasksModeConfirmDelete
)

// KindFilter restricts the list to one collection
type KindFilter int

const (
	FilterAll KindFilter = iota
	FilterClient
	FilterPersonal
)

// String returns the display name for a filter
func (f KindFilter) String() string {
	switch f {
	case FilterClient:
		return "client"
	case FilterPersonal:
		return "personal"
	default:
		return "all"
	}
}

// Kind returns the task kind the filter selects, and false for FilterAll
func (f KindFilter) Kind() (model.Kind, bool) {
	switch f {
	case FilterClient:
		return model.KindClient, true
	case FilterPersonal:
		return model.KindPersonal, true
	default:
		return "", false
	}
}

// TasksView is the urgency-sorted task list with quick-add
type TasksView struct {
	app    *app.App
	width  int
	height int

	all      []model.Task
	filtered []model.Task
	today    model.Date
	cursor   int
	expanded bool

	mode   TasksMode
	filter KindFilter
	search string
	input  textinput.Model
}

type tasksLoadedMsg struct {
	tasks []model.Task
	today model.Date
}

// NewTasksView creates a new task list view
func NewTasksView(a *app.App) TasksView {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60
	return TasksView{app: a, input: ti}
}

// Init initializes the task list view
func (v TasksView) Init() tea.Cmd {
	return v.load()
}

// IsInputMode returns whether the view is capturing text
func (v TasksView) IsInputMode() bool {
	return v.mode != TasksModeNormal
}

// SetSize sets the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	v.input.Width = width - 12
	return v
}

func (v TasksView) load() tea.Cmd {
	a := v.app
	return func() tea.Msg {
		return tasksLoadedMsg{tasks: a.Tasks.Sorted(), today: a.Today()}
	}
}

// Update handles messages
func (v TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.all = msg.tasks
		v.today = msg.today
		v.applyFilter()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case TasksModeAdd:
			return v.handleAddMode(msg)
		case TasksModePay:
			return v.handlePayMode(msg)
		case TasksModeSearch:
			return v.handleSearchMode(msg)
		case TasksModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode != TasksModeNormal {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v TasksView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.cursor = clampCursor(v.cursor+1, len(v.filtered))
	case "k", "up":
		v.cursor = clampCursor(v.cursor-1, len(v.filtered))
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		v.cursor = clampCursor(len(v.filtered)-1, len(v.filtered))
	case "enter":
		v.expanded = !v.expanded
	case "f":
		v.filter = (v.filter + 1) % 3
		v.applyFilter()
	case "a":
		v.mode = TasksModeAdd
		v.input.Reset()
		v.input.Placeholder = "Logo design client:Acme @design !high due:friday $1500 paid:500"
		return v, v.input.Focus()
	case "/":
		v.mode = TasksModeSearch
		v.input.SetValue(v.search)
		v.input.Placeholder = "search"
		return v, v.input.Focus()
	case "esc":
		if v.search != "" {
			v.search = ""
			v.applyFilter()
		}
	}

	task, ok := v.selected()
	if !ok {
		return v, nil
	}

	switch msg.String() {
	case "x", "tab":
		return v, v.toggleDone(task)
	case "s":
		return v, v.advanceStatus(task)
	case "p":
		return v, v.cyclePriority(task)
	case "$":
		if !task.HasPayment() {
			return v, func() tea.Msg { return FailedMsg{Err: fmt.Errorf("%q: %w", task.Name(), tasks.ErrNoTotal)} }
		}
		v.mode = TasksModePay
		v.input.Reset()
		v.input.Placeholder = fmt.Sprintf("amount paid of %s", task.Total().Humanize())
		return v, v.input.Focus()
	case "d":
		v.mode = TasksModeConfirmDelete
	}
	return v, nil
}

func (v TasksView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = TasksModeNormal
		v.input.Blur()
		return v, nil
	case "enter":
		text := strings.TrimSpace(v.input.Value())
		v.mode = TasksModeNormal
		v.input.Blur()
		if text == "" {
			return v, nil
		}
		kind, ok := v.filter.Kind()
		if !ok {
			kind = model.KindClient
		}
		return v, v.createTask(text, kind)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TasksView) handlePayMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = TasksModeNormal
		v.input.Blur()
		return v, nil
	case "enter":
		amount := strings.TrimSpace(v.input.Value())
		v.mode = TasksModeNormal
		v.input.Blur()
		task, ok := v.selected()
		if !ok || amount == "" {
			return v, nil
		}
		return v, v.recordPayment(task, amount)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TasksView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = TasksModeNormal
		v.input.Blur()
		v.search = ""
		v.applyFilter()
		return v, nil
	case "enter":
		v.mode = TasksModeNormal
		v.input.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.search = v.input.Value()
	v.applyFilter()
	return v, cmd
}

func (v TasksView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.mode = TasksModeNormal
	switch msg.String() {
	case "y", "Y":
		task, ok := v.selected()
		if !ok {
			return v, nil
		}
		return v, v.deleteTask(task)
	}
	return v, nil
}

func (v TasksView) selected() (model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.filtered) {
		return model.Task{}, false
	}
	return v.filtered[v.cursor], true
}

// applyFilter narrows the loaded tasks by kind and search text
func (v *TasksView) applyFilter() {
	kind, byKind := v.filter.Kind()
	needle := strings.ToLower(strings.TrimSpace(v.search))

	v.filtered = nil
	for _, t := range v.all {
		if byKind && t.Kind != kind {
			continue
		}
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		v.filtered = append(v.filtered, t)
	}
	v.cursor = clampCursor(v.cursor, len(v.filtered))
}

func matchesSearch(t model.Task, needle string) bool {
	fields := []string{t.ProjectName, t.ClientName, t.Category, t.Description}
	fields = append(fields, t.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func (v TasksView) createTask(text string, kind model.Kind) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		t, err := a.Tasks.Add(quickadd.Parse(text, kind, a.Today()))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %q", t.Name()), nil
	})
}

func (v TasksView) toggleDone(task model.Task) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		if task.IsCompleted() {
			status := model.StatusNotStarted
			if _, err := a.UpdateTask(task.ID, tasks.Patch{Status: &status}); err != nil {
				return "", err
			}
			return fmt.Sprintf("Reopened %q", task.Name()), nil
		}
		if _, err := a.CompleteTask(task.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Completed %q", task.Name()), nil
	})
}

// advanceStatus moves the task one step along the workflow
func (v TasksView) advanceStatus(task model.Task) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		statuses := model.Statuses()
		next := statuses[0]
		for i, s := range statuses {
			if s == task.Status {
				next = statuses[(i+1)%len(statuses)]
			}
		}
		if _, err := a.UpdateTask(task.ID, tasks.Patch{Status: &next}); err != nil {
			return "", err
		}
		return fmt.Sprintf("%q is %s", task.Name(), next), nil
	})
}

func (v TasksView) cyclePriority(task model.Task) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		priorities := model.Priorities()
		next := priorities[0]
		for i, p := range priorities {
			if p == task.Priority {
				next = priorities[(i+1)%len(priorities)]
			}
		}
		t, err := a.UpdateTask(task.ID, tasks.Patch{Priority: &next})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q priority %s", t.Name(), t.Priority), nil
	})
}

func (v TasksView) recordPayment(task model.Task, amount string) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		// A bare number is in the task's currency
		if r, _ := utf8.DecodeRuneInString(amount); unicode.IsDigit(r) || r == '.' {
			amount = task.Total().Currency + amount
		}
		t, err := a.RecordPayment(task.ID, amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q is %d%% paid", t.Name(), t.PaymentProgress), nil
	})
}

func (v TasksView) deleteTask(task model.Task) tea.Cmd {
	a := v.app
	return mutate(a, func() (string, error) {
		if err := a.DeleteTask(task.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %q", task.Name()), nil
	})
}

// View renders the task list
func (v TasksView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var b strings.Builder

	title := fmt.Sprintf("Tasks ─ %s (%d)", v.filter, len(v.filtered))
	if v.search != "" && v.mode != TasksModeSearch {
		title += styles.Label.Render(fmt.Sprintf("  filter: %q", v.search))
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	switch v.mode {
	case TasksModeAdd, TasksModePay, TasksModeSearch:
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	case TasksModeConfirmDelete:
		if task, ok := v.selected(); ok {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Bold(true).
				Render(fmt.Sprintf("Delete %q? (y/n)", task.Name())))
			b.WriteString("\n")
		}
	}

	if len(v.filtered) == 0 {
		b.WriteString(emptyState("No tasks. Press a to add one."))
		return b.String()
	}

	listHeight := v.height - strings.Count(b.String(), "\n") - 1
	if v.expanded {
		listHeight -= 8
	}
	start, end := scrollWindow(v.cursor, len(v.filtered), listHeight)
	for i := start; i < end; i++ {
		b.WriteString(renderTask(v.filtered[i], v.today, i == v.cursor, v.width))
		b.WriteString("\n")
		if v.expanded && i == v.cursor {
			b.WriteString(renderDetail(v.filtered[i]))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
