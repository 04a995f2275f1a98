package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/ui/theme"
	"github.com/dori/kairo/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	dashboardView views.DashboardView
	tasksView     views.TasksView
	dueView       views.DueView
	completedView views.CompletedView
	inboxView     views.InboxView
	helpVisible   bool

	toasts   Toasts
	errorMsg string
}

// NewRootModel creates a new root model and applies the saved theme
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	if t, ok := theme.ByName(application.Settings().Theme); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewDashboard,
		dashboardView: views.NewDashboardView(application),
		tasksView:     views.NewTasksView(application),
		dueView:       views.NewDueView(application),
		completedView: views.NewCompletedView(application),
		inboxView:     views.NewInboxView(application),
		toasts:        NewToasts(application.Config.ToastDuration),
	}
}

// WithView sets the view shown first
func (m RootModel) WithView(v View) RootModel {
	m.currentView = v
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.reloadAll()
}

// reloadAll refreshes every view from the stores
func (m RootModel) reloadAll() tea.Cmd {
	return tea.Batch(
		m.dashboardView.Init(),
		m.tasksView.Init(),
		m.dueView.Init(),
		m.completedView.Init(),
		m.inboxView.Init(),
	)
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView.IsInputMode()
	case ViewTasks:
		return m.tasksView.IsInputMode()
	case ViewDue:
		return m.dueView.IsInputMode()
	case ViewCompleted:
		return m.completedView.IsInputMode()
	case ViewInbox:
		return m.inboxView.IsInputMode()
	}
	return false
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (2 lines)
		contentHeight := m.height - 3
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		m.dueView = m.dueView.SetSize(m.width, contentHeight)
		m.completedView = m.completedView.SetSize(m.width, contentHeight)
		m.inboxView = m.inboxView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		isInputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if isInputMode {
			break
		}

		if m.helpVisible {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.helpVisible = false
				m.help.ShowAll = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			m.help.ShowAll = true
			return m, nil
		case key.Matches(msg, m.keys.DashboardView):
			return m.switchTo(ViewDashboard)
		case key.Matches(msg, m.keys.TasksView):
			return m.switchTo(ViewTasks)
		case key.Matches(msg, m.keys.DueView):
			return m.switchTo(ViewDue)
		case key.Matches(msg, m.keys.CompletedView):
			return m.switchTo(ViewCompleted)
		case key.Matches(msg, m.keys.InboxView):
			return m.switchTo(ViewInbox)
		case key.Matches(msg, m.keys.NextView):
			return m.switchTo((m.currentView + 1) % (ViewInbox + 1))
		}

	case views.ChangedMsg:
		cmds := []tea.Cmd{m.reloadAll()}
		if msg.Status != "" {
			cmds = append(cmds, m.pushToast(msg.Status, msg.Severity))
		}
		if msg.Raised > 0 {
			cmds = append(cmds, m.pushToast(raisedText(msg.Raised), model.SeverityWarning))
		}
		return m, tea.Batch(cmds...)

	case views.FailedMsg:
		m.errorMsg = msg.Err.Error()
		return m, m.pushToast(msg.Err.Error(), model.SeverityError)

	case ReloadMsg:
		cmds := []tea.Cmd{m.reloadAll()}
		if msg.Raised > 0 {
			cmds = append(cmds, m.pushToast(raisedText(msg.Raised), model.SeverityWarning))
		}
		// The reload may have picked up a theme saved by another process
		if t, ok := theme.ByName(m.app.Settings().Theme); ok && t.Name != theme.Current.Theme.Name {
			theme.SetTheme(t)
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		m.toasts = m.toasts.Expire(msg.id)
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		return m, m.pushToast(msg.Message, model.SeverityInfo)

	case ThemeChangedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		return m, m.pushToast(fmt.Sprintf("Theme: %s", msg.ThemeName), model.SeverityInfo)
	}

	// Delegate to the view that owns the message. Load results are routed
	// to every view since each view ignores the others' messages.
	if _, ok := msg.(tea.KeyMsg); ok {
		return m.updateCurrent(msg)
	}
	return m.updateAll(msg)
}

func (m RootModel) switchTo(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	switch v {
	case ViewDashboard:
		return m, m.dashboardView.Init()
	case ViewTasks:
		return m, m.tasksView.Init()
	case ViewDue:
		return m, m.dueView.Init()
	case ViewCompleted:
		return m, m.completedView.Init()
	case ViewInbox:
		return m, m.inboxView.Init()
	}
	return m, nil
}

func (m RootModel) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model
	switch m.currentView {
	case ViewDashboard:
		next, cmd = m.dashboardView.Update(msg)
		m.dashboardView = next.(views.DashboardView)
	case ViewTasks:
		next, cmd = m.tasksView.Update(msg)
		m.tasksView = next.(views.TasksView)
	case ViewDue:
		next, cmd = m.dueView.Update(msg)
		m.dueView = next.(views.DueView)
	case ViewCompleted:
		next, cmd = m.completedView.Update(msg)
		m.completedView = next.(views.CompletedView)
	case ViewInbox:
		next, cmd = m.inboxView.Update(msg)
		m.inboxView = next.(views.InboxView)
	}
	return m, cmd
}

func (m RootModel) updateAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var next tea.Model
	var cmd tea.Cmd

	next, cmd = m.dashboardView.Update(msg)
	m.dashboardView = next.(views.DashboardView)
	cmds = append(cmds, cmd)

	next, cmd = m.tasksView.Update(msg)
	m.tasksView = next.(views.TasksView)
	cmds = append(cmds, cmd)

	next, cmd = m.dueView.Update(msg)
	m.dueView = next.(views.DueView)
	cmds = append(cmds, cmd)

	next, cmd = m.completedView.Update(msg)
	m.completedView = next.(views.CompletedView)
	cmds = append(cmds, cmd)

	next, cmd = m.inboxView.Update(msg)
	m.inboxView = next.(views.InboxView)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *RootModel) pushToast(text string, severity model.Severity) tea.Cmd {
	var cmd tea.Cmd
	m.toasts, cmd = m.toasts.Push(text, severity)
	return cmd
}

func raisedText(n int) string {
	if n == 1 {
		return "1 new notification"
	}
	return fmt.Sprintf("%d new notifications", n)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 3
	if m.errorMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewDashboard:
			content = m.dashboardView.View()
		case ViewTasks:
			content = m.tasksView.View()
		case ViewDue:
			content = m.dueView.View()
		case ViewCompleted:
			content = m.completedView.View()
		case ViewInbox:
			content = m.inboxView.View()
		}
	}

	// Toasts sit at the bottom right of the content area
	if toasts := m.toasts.View(); toasts != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content,
			lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts))
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("kairo")

	tabStyle := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1)

	tabs := []string{title}
	for v := ViewDashboard; v <= ViewInbox; v++ {
		label := fmt.Sprintf("%d %s", int(v)+1, v)
		if v == ViewInbox {
			if unread := m.app.Notifications.UnreadCount() + m.app.Messages.UnreadCount(); unread > 0 {
				label = fmt.Sprintf("%s (%d)", label, unread)
			}
		}
		if v == m.currentView {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	rightSide := tabStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var lines []string
	if m.errorMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg))
	}

	var hints string
	switch {
	case m.helpVisible:
		hints = key("?/esc", "close help")
	case m.isInputMode():
		hints = key("enter", "confirm") + sep + key("esc", "cancel")
	case m.currentView == ViewDashboard:
		hints = key("w/m/y", "period") + sep + key("f", "finance scope") + sep + key("r", "refresh")
	case m.currentView == ViewTasks:
		hints = key("a", "add") + sep +
			key("x", "done") + sep +
			key("s", "status") + sep +
			key("p", "priority") + sep +
			key("$", "pay") + sep +
			key("d", "del") + sep +
			key("f", "kind") + sep +
			key("/", "search") + sep +
			key("enter", "details")
	case m.currentView == ViewDue:
		hints = key("j/k", "navigate") + sep + key("x", "complete")
	case m.currentView == ViewCompleted:
		hints = key("j/k", "navigate") + sep + key("u", "reopen") + sep + key("d", "delete")
	case m.currentView == ViewInbox:
		hints = key("tab", "section") + sep +
			key("enter", "open") + sep +
			key("r", "read") + sep +
			key("R", "read all") + sep +
			key("d", "delete") + sep +
			key("C", "clear")
	}
	lines = append(lines, hints)
	lines = append(lines, key("1-5", "views")+sep+m.help.ShortHelpView(m.keys.ShortHelp()))

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("kairo Help"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	section := func(name string, rows [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Tasks", [][]string{
		{"a", "Quick-add a task"},
		{"x / tab", "Complete or reopen"},
		{"s", "Advance status"},
		{"p", "Cycle priority"},
		{"$", "Record amount paid"},
		{"d", "Delete task"},
		{"f", "Filter by kind"},
		{"/", "Search"},
		{"enter", "Show details"},
	})

	section("Quick-add syntax", [][]string{
		{"@tag", "Add a tag"},
		{"#category", "Set the category"},
		{"!high", "Set priority (low, medium, high, urgent)"},
		{"due:friday", "Due date (today, tomorrow, +3d, 2026-01-15)"},
		{"start:today", "Start date"},
		{"client:Acme", "Client name (underscores become spaces)"},
		{"$1500", "Total amount, any currency symbol"},
		{"paid:500", "Amount already paid"},
	})

	section("Inbox", [][]string{
		{"tab", "Switch notifications / messages"},
		{"r / R", "Mark read / mark all read"},
		{"d / C", "Delete / clear all"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme switches to the next theme and saves it in the settings
func (m *RootModel) cycleTheme() tea.Cmd {
	next := theme.Next(theme.Current.Theme.Name)
	theme.SetTheme(next)

	a := m.app
	return func() tea.Msg {
		_, err := a.UpdateSettings(func(s *model.Settings) { s.Theme = next.Name })
		return ThemeChangedMsg{ThemeName: next.Name, Err: err}
	}
}
