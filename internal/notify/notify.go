package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/dori/kairo/internal/model"
)

// Urgency levels for desktop alerts
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Alert represents a desktop notification
type Alert struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier delivers alerts to the desktop through notify-send
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled enables or disables desktop delivery
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether desktop delivery is enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop alert using notify-send
func (n *Notifier) Send(alert Alert) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", alertArgs(alert)...)
}

func alertArgs(alert Alert) []string {
	args := []string{}

	switch alert.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout is in milliseconds
	if alert.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(alert.Timeout.Milliseconds())))
	}

	if alert.Icon != "" {
		args = append(args, "-i", alert.Icon)
	}

	args = append(args, "-a", "kairo")

	args = append(args, alert.Title)
	if alert.Body != "" {
		args = append(args, alert.Body)
	}
	return args
}

// Push delivers a logged notification to the desktop
func (n *Notifier) Push(notification model.Notification) error {
	alert := Alert{
		Title:   notification.Title,
		Body:    notification.Message,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
	}

	switch notification.Type {
	case model.SeverityError:
		alert.Urgency = UrgencyCritical
		alert.Timeout = 15 * time.Second
		alert.Icon = "emblem-important-symbolic"
	case model.SeverityWarning:
		alert.Icon = "appointment-soon-symbolic"
	case model.SeverityInfo, model.SeveritySuccess:
		alert.Urgency = UrgencyLow
		alert.Timeout = 5 * time.Second
	}

	return n.Send(alert)
}
