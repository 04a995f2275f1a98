package model

import (
	"time"
)

// Severity classifies a notification for display
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Category names the condition a task notification was raised for
type Category string

const (
	CategoryOverdue   Category = "overdue"
	CategoryDueToday  Category = "due-today"
	CategoryDueSoon   Category = "due-soon"
	CategoryPayment   Category = "payment"
	CategoryCompleted Category = "completed"
	CategoryPaid      Category = "payment-recorded"
)

// Title returns the notification title used for a category
func (c Category) Title() string {
	switch c {
	case CategoryOverdue:
		return "Task Overdue"
	case CategoryDueToday:
		return "Task Due Today"
	case CategoryDueSoon:
		return "Task Due Soon"
	case CategoryPayment:
		return "Payment Pending"
	case CategoryCompleted:
		return "Task Completed"
	case CategoryPaid:
		return "Payment Recorded"
	default:
		return string(c)
	}
}

// Notification is an entry in the append-only notification log.
// TaskID and Category are empty for notifications not tied to a task.
type Notification struct {
	ID       int64     `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Message  string    `json:"message" yaml:"message"`
	Type     Severity  `json:"type" yaml:"type"`
	Date     time.Time `json:"date" yaml:"date"`
	Read     bool      `json:"read" yaml:"read"`
	TaskID   int64     `json:"taskId,omitempty" yaml:"taskId,omitempty"`
	Category Category  `json:"category,omitempty" yaml:"category,omitempty"`
}

// Message is an entry in the inbox
type Message struct {
	ID      int64     `json:"id" yaml:"id"`
	From    string    `json:"from" yaml:"from"`
	Subject string    `json:"subject" yaml:"subject"`
	Body    string    `json:"body" yaml:"body"`
	Date    time.Time `json:"date" yaml:"date"`
	Read    bool      `json:"read" yaml:"read"`
}
