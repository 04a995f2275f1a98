package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/finance"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/urgency"
	"github.com/dori/kairo/internal/ui/theme"
)

// TimePeriod represents a time range for completion counts
type TimePeriod int

const (
	PeriodWeek TimePeriod = iota
	PeriodMonth
	PeriodYear
)

// financeScope selects which collection the finance panel totals
type financeScope int

const (
	scopeAll financeScope = iota
	scopeClient
	scopePersonal
)

func (s financeScope) String() string {
	switch s {
	case scopeClient:
		return "Client"
	case scopePersonal:
		return "Personal"
	default:
		return "All"
	}
}

// DashboardView shows task statistics and the financial overview
type DashboardView struct {
	app    *app.App
	width  int
	height int

	period TimePeriod
	scope  financeScope

	stats            urgency.Stats
	completedPeriod  int
	overview         finance.Overview
	byClient         []clientRevenue
	dailyCompletions []int
	recent           []model.Notification
	unread           int
	userName         string
}

type clientRevenue struct {
	name    string
	revenue int64
	label   string
}

type dashboardLoadedMsg struct {
	stats            urgency.Stats
	completedPeriod  int
	overview         finance.Overview
	byClient         []clientRevenue
	dailyCompletions []int
	recent           []model.Notification
	unread           int
	userName         string
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(a *app.App) DashboardView {
	return DashboardView{app: a, period: PeriodWeek}
}

// Init initializes the dashboard view
func (v DashboardView) Init() tea.Cmd {
	return v.load()
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

func (v DashboardView) load() tea.Cmd {
	a, period, scope := v.app, v.period, v.scope
	return func() tea.Msg {
		now := time.Now()
		var start time.Time
		switch period {
		case PeriodWeek:
			start = now.AddDate(0, 0, -7)
		case PeriodMonth:
			start = now.AddDate(0, -1, 0)
		case PeriodYear:
			start = now.AddDate(-1, 0, 0)
		}

		all := a.Tasks.All()
		today := a.Today()

		completed := 0
		for _, t := range all {
			if t.IsCompleted() && t.CompletedAt != nil && !t.CompletedAt.Before(start) {
				completed++
			}
		}

		var scoped []model.Task
		switch scope {
		case scopeClient:
			scoped = a.Tasks.List(model.KindClient)
		case scopePersonal:
			scoped = a.Tasks.List(model.KindPersonal)
		default:
			scoped = all
		}

		return dashboardLoadedMsg{
			stats:            a.Tasks.Stats(),
			completedPeriod:  completed,
			overview:         finance.Aggregate(scoped),
			byClient:         revenueByClient(scoped),
			dailyCompletions: dailyCompletions(all, today),
			recent:           a.Notifications.Recent(5),
			unread:           a.Notifications.UnreadCount() + a.Messages.UnreadCount(),
			userName:         a.Settings().UserName,
		}
	}
}

// dailyCompletions counts completions for each of the last seven days,
// oldest first
func dailyCompletions(tasks []model.Task, today model.Date) []int {
	counts := make([]int, 7)
	for _, t := range tasks {
		if !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		ago := model.DateOf(t.CompletedAt.Local()).DaysUntil(today)
		if ago >= 0 && ago < 7 {
			counts[6-ago]++
		}
	}
	return counts
}

// revenueByClient totals revenue per client (or category for personal
// tasks), largest first
func revenueByClient(tasks []model.Task) []clientRevenue {
	groups := map[string][]model.Task{}
	var order []string
	for _, t := range tasks {
		if !t.HasPayment() {
			continue
		}
		name := t.ClientName
		if name == "" {
			name = t.Category
		}
		if name == "" {
			name = "Other"
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], t)
	}

	out := make([]clientRevenue, 0, len(order))
	for _, name := range order {
		o := finance.Aggregate(groups[name])
		out = append(out, clientRevenue{name: name, revenue: o.TotalRevenue.Minor, label: o.TotalRevenue.Humanize()})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].revenue > out[j-1].revenue; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.stats = msg.stats
		v.completedPeriod = msg.completedPeriod
		v.overview = msg.overview
		v.byClient = msg.byClient
		v.dailyCompletions = msg.dailyCompletions
		v.recent = msg.recent
		v.unread = msg.unread
		v.userName = msg.userName
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "w":
			v.period = PeriodWeek
			return v, v.load()
		case "m":
			v.period = PeriodMonth
			return v, v.load()
		case "y":
			v.period = PeriodYear
			return v, v.load()
		case "f":
			v.scope = (v.scope + 1) % 3
			return v, v.load()
		case "r":
			return v, v.load()
		}
	}

	return v, nil
}

// View renders the dashboard
func (v DashboardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var sections []string

	periodLabels := []string{"Week", "Month", "Year"}
	greeting := "Dashboard"
	if v.userName != "" {
		greeting = fmt.Sprintf("Welcome back, %s", v.userName)
	}
	sections = append(sections, styles.Title.Render(fmt.Sprintf("%s ─ %s", greeting, periodLabels[v.period])))
	sections = append(sections, "")

	card := func(value, label string, color lipgloss.Color) string {
		return styles.Card.Render(
			styles.CardValue.Foreground(color).Render(value) + "\n" +
				styles.Label.Render(label),
		)
	}

	taskRow := lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprintf("%d", v.stats.Total), "Tasks", t.Primary),
		card(fmt.Sprintf("%d", v.stats.InProgress), "In Progress", t.StatusActive),
		card(fmt.Sprintf("%d", v.stats.Overdue), "Overdue", t.Error),
		card(fmt.Sprintf("%d", v.stats.DueSoon), "Due Soon", t.Warning),
		card(fmt.Sprintf("%d", v.completedPeriod), "Completed", t.Success),
	)
	sections = append(sections, taskRow)
	sections = append(sections, "")

	sections = append(sections, styles.Subtitle.Render(fmt.Sprintf("Finances ─ %s", v.scope)))
	financeRow := lipgloss.JoinHorizontal(lipgloss.Top,
		card(v.overview.TotalRevenue.Humanize(), "Revenue", t.Primary),
		card(v.overview.TotalPaid.Humanize(), "Paid", t.Success),
		card(v.overview.TotalOutstanding.Humanize(), "Outstanding", t.Warning),
		card(fmt.Sprintf("%d%%", v.overview.PaidPercent()), "Collected", t.Info),
	)
	sections = append(sections, financeRow)
	sections = append(sections, "")

	chart := v.renderActivityChart()
	revenue := v.renderRevenue()
	if revenue != "" && v.width >= 90 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, chart, "    ", revenue))
	} else {
		sections = append(sections, chart)
		if revenue != "" {
			sections = append(sections, "", revenue)
		}
	}
	sections = append(sections, "")

	if len(v.recent) > 0 {
		sections = append(sections, v.renderRecent())
	}

	return strings.Join(sections, "\n")
}

// renderActivityChart renders the 7-day completion chart
func (v DashboardView) renderActivityChart() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Subtitle.Render("Completed (Last 7 Days)"))

	maxCount := 1
	for _, count := range v.dailyCompletions {
		if count > maxCount {
			maxCount = count
		}
	}

	chartHeight := 5
	barWidth := 4

	for row := chartHeight; row >= 1; row-- {
		var rowStr strings.Builder
		threshold := float64(row) / float64(chartHeight)

		for i, count := range v.dailyCompletions {
			ratio := float64(count) / float64(maxCount)

			var block string
			if ratio >= threshold {
				block = lipgloss.NewStyle().Foreground(t.Success).Render(strings.Repeat("█", barWidth))
			} else if ratio >= threshold-0.2 && ratio > 0 {
				block = lipgloss.NewStyle().Foreground(t.Info).Render(strings.Repeat("▄", barWidth))
			} else {
				block = strings.Repeat(" ", barWidth)
			}

			rowStr.WriteString(block)
			if i < len(v.dailyCompletions)-1 {
				rowStr.WriteString(" ")
			}
		}
		lines = append(lines, rowStr.String())
	}

	today := time.Now()
	var labelStr, countStr strings.Builder
	for i, count := range v.dailyCompletions {
		day := today.AddDate(0, 0, i-6)
		labelStr.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Width(barWidth).Align(lipgloss.Center).Render(day.Format("Mon")))
		countStr.WriteString(lipgloss.NewStyle().Foreground(t.Foreground).Width(barWidth).Align(lipgloss.Center).Render(fmt.Sprintf("%d", count)))
		if i < len(v.dailyCompletions)-1 {
			labelStr.WriteString(" ")
			countStr.WriteString(" ")
		}
	}
	lines = append(lines, labelStr.String(), countStr.String())

	return strings.Join(lines, "\n")
}

// renderRevenue renders revenue per client as horizontal bars
func (v DashboardView) renderRevenue() string {
	if len(v.byClient) == 0 {
		return ""
	}
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Subtitle.Render("Revenue by Client"))

	maxRevenue := int64(1)
	for _, c := range v.byClient {
		if c.revenue > maxRevenue {
			maxRevenue = c.revenue
		}
	}

	barMaxWidth := 24
	for i, c := range v.byClient {
		if i == 6 {
			break
		}
		ratio := float64(c.revenue) / float64(maxRevenue)
		barWidth := int(ratio * float64(barMaxWidth))
		if barWidth < 1 && c.revenue > 0 {
			barWidth = 1
		}
		bar := lipgloss.NewStyle().Foreground(t.Info).Render(strings.Repeat("█", barWidth))
		name := c.name
		if len([]rune(name)) > 14 {
			name = string([]rune(name)[:13]) + "…"
		}
		lines = append(lines, fmt.Sprintf("%-15s %s %s", name, bar, c.label))
	}

	return strings.Join(lines, "\n")
}

// renderRecent renders the newest notifications
func (v DashboardView) renderRecent() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	header := "Recent Notifications"
	if v.unread > 0 {
		header = fmt.Sprintf("%s (%d unread)", header, v.unread)
	}
	lines := []string{styles.Subtitle.Render(header)}
	for _, n := range v.recent {
		marker := "  "
		if !n.Read {
			marker = lipgloss.NewStyle().Foreground(t.Primary).Render("● ")
		}
		title := lipgloss.NewStyle().Foreground(t.SeverityColor(n.Type)).Render(n.Title)
		lines = append(lines, lipgloss.NewStyle().MaxWidth(v.width).Render(
			marker+title+" "+styles.Label.Render(n.Message)))
	}
	return strings.Join(lines, "\n")
}

// IsInputMode returns whether the view is in input mode
func (v DashboardView) IsInputMode() bool {
	return false
}
