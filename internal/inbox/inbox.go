// Package inbox holds the append-only notification and message logs.
package inbox

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dori/kairo/internal/model"
)

// Storage keys for the persisted logs
const (
	NotificationsKey = "notifications"
	MessagesKey      = "messages"
)

// Saver persists a log under a key
type Saver interface {
	Save(key string, v any) error
}

// Notifications is the notification log, newest first
type Notifications struct {
	mu      sync.Mutex
	entries []model.Notification
	saver   Saver
	now     func() time.Time
	logger  *slog.Logger
}

// NewNotifications creates a log seeded with previously stored entries
func NewNotifications(entries []model.Notification, saver Saver, logger *slog.Logger) *Notifications {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifications{
		entries: slices.Clone(entries),
		saver:   saver,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source
func (l *Notifications) SetClock(now func() time.Time) {
	l.now = now
}

// Add appends a notification and returns it with its id and date set
func (l *Notifications) Add(title, message string, severity model.Severity) model.Notification {
	return l.Append(model.Notification{Title: title, Message: message, Type: severity})[0]
}

// Append stores notifications as unread, assigning ids and dates, and
// returns the stored entries
func (l *Notifications) Append(ns ...model.Notification) []model.Notification {
	if len(ns) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	stored := make([]model.Notification, 0, len(ns))
	for _, n := range ns {
		n.ID = model.NewID(now, l.taken)
		n.Date = now
		n.Read = false
		// Newest first
		l.entries = append([]model.Notification{n}, l.entries...)
		stored = append(stored, n)
	}
	l.persist()
	return stored
}

func (l *Notifications) taken(id int64) bool {
	return slices.ContainsFunc(l.entries, func(n model.Notification) bool { return n.ID == id })
}

// All returns a copy of every notification, newest first
func (l *Notifications) All() []model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Unread returns the unread notifications
func (l *Notifications) Unread() []model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Notification
	for _, n := range l.entries {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns the number of unread notifications
func (l *Notifications) UnreadCount() int {
	return len(l.Unread())
}

// Recent returns up to limit notifications ordered by date, newest first
func (l *Notifications) Recent(limit int) []model.Notification {
	all := l.All()
	slices.SortStableFunc(all, func(a, b model.Notification) int { return b.Date.Compare(a.Date) })
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// MarkRead marks one notification read. It reports whether the id was found.
func (l *Notifications) MarkRead(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Read = true
			l.persist()
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification read
func (l *Notifications) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		l.entries[i].Read = true
	}
	l.persist()
}

// Delete removes one notification. It reports whether the id was found.
func (l *Notifications) Delete(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := len(l.entries)
	l.entries = slices.DeleteFunc(l.entries, func(n model.Notification) bool { return n.ID == id })
	if len(l.entries) == before {
		return false
	}
	l.persist()
	return true
}

// Clear removes every notification
func (l *Notifications) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.persist()
}

// Replace swaps the whole log, as done by a backup import
func (l *Notifications) Replace(entries []model.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = slices.Clone(entries)
	l.persist()
}

// Reset swaps the log with entries read back from storage, without writing
func (l *Notifications) Reset(entries []model.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = slices.Clone(entries)
}

func (l *Notifications) persist() {
	if l.saver == nil {
		return
	}
	entries := l.entries
	if entries == nil {
		entries = []model.Notification{}
	}
	if err := l.saver.Save(NotificationsKey, entries); err != nil {
		l.logger.Warn("failed to persist notifications", "error", err)
	}
}

// Messages is the message inbox, newest first
type Messages struct {
	mu      sync.Mutex
	entries []model.Message
	saver   Saver
	now     func() time.Time
	logger  *slog.Logger
}

// NewMessages creates an inbox seeded with previously stored entries
func NewMessages(entries []model.Message, saver Saver, logger *slog.Logger) *Messages {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messages{
		entries: slices.Clone(entries),
		saver:   saver,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source
func (m *Messages) SetClock(now func() time.Time) {
	m.now = now
}

// Add stores a new unread message and returns it
func (m *Messages) Add(from, subject, body string) model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	msg := model.Message{
		ID: model.NewID(now, func(id int64) bool {
			return slices.ContainsFunc(m.entries, func(e model.Message) bool { return e.ID == id })
		}),
		From:    from,
		Subject: subject,
		Body:    body,
		Date:    now,
	}
	m.entries = append([]model.Message{msg}, m.entries...)
	m.persist()
	return msg
}

// All returns a copy of every message, newest first
func (m *Messages) All() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// Get returns a message by id
func (m *Messages) Get(id int64) (model.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.entries {
		if msg.ID == id {
			return msg, true
		}
	}
	return model.Message{}, false
}

// Unread returns the unread messages
func (m *Messages) Unread() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Message
	for _, msg := range m.entries {
		if !msg.Read {
			out = append(out, msg)
		}
	}
	return out
}

// UnreadCount returns the number of unread messages
func (m *Messages) UnreadCount() int {
	return len(m.Unread())
}

// Recent returns up to limit messages ordered by date, newest first
func (m *Messages) Recent(limit int) []model.Message {
	all := m.All()
	slices.SortStableFunc(all, func(a, b model.Message) int { return b.Date.Compare(a.Date) })
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// MarkRead marks one message read. It reports whether the id was found.
func (m *Messages) MarkRead(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Read = true
			m.persist()
			return true
		}
	}
	return false
}

// MarkAllRead marks every message read
func (m *Messages) MarkAllRead() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		m.entries[i].Read = true
	}
	m.persist()
}

// Delete removes one message. It reports whether the id was found.
func (m *Messages) Delete(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.entries)
	m.entries = slices.DeleteFunc(m.entries, func(e model.Message) bool { return e.ID == id })
	if len(m.entries) == before {
		return false
	}
	m.persist()
	return true
}

// Clear removes every message
func (m *Messages) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.persist()
}

// Replace swaps the whole inbox, as done by a backup import
func (m *Messages) Replace(entries []model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	m.persist()
}

// Reset swaps the inbox with entries read back from storage, without writing
func (m *Messages) Reset(entries []model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
}

func (m *Messages) persist() {
	if m.saver == nil {
		return
	}
	entries := m.entries
	if entries == nil {
		entries = []model.Message{}
	}
	if err := m.saver.Save(MessagesKey, entries); err != nil {
		m.logger.Warn("failed to persist messages", "error", err)
	}
}

// Welcome sends the onboarding message addressed to the user's first name
func (m *Messages) Welcome(userName string) model.Message {
	first := strings.TrimSpace(userName)
	if fields := strings.Fields(first); len(fields) > 0 {
		first = fields[0]
	}
	if first == "" {
		first = "there"
	}
	body := "Hi " + first + ", welcome to Kairo.\n\n" + welcomeBody
	return m.Add("Maayo", "Welcome to Kairo!", body)
}

const welcomeBody = `Kairo keeps client work and personal tasks in one place.

QUICK FIRST STEPS
1. Add your first task: press "a" in the task list, or run "kairo add".
2. Set due dates. Overdue and due-soon tasks rise to the top on their own.
3. Track fees and payments. Outstanding amounts roll up on the dashboard.
4. Choose your reminders with "kairo settings": overdue, upcoming, updates, payments.
5. Back up anytime with "kairo export".

Reply with feedback any time.

Maayo
Founder, Kairo`
