package model

import (
	"time"

	"github.com/dori/kairo/internal/money"
)

// Kind separates client work from personal tasks. Each kind lives in its own
// collection.
type Kind string

const (
	KindClient   Kind = "client"
	KindPersonal Kind = "personal"
)

// Kinds returns every task kind in display order
func Kinds() []Kind {
	return []Kind{KindClient, KindPersonal}
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == KindClient || k == KindPersonal
}

// Status represents the workflow state of a task
type Status string

const (
	StatusNotStarted       Status = "Not Started"
	StatusStarted          Status = "Started"
	StatusProcessing       Status = "Processing"
	StatusReview           Status = "Review"
	StatusReviewCorrection Status = "Review Correction"
	StatusCompleted        Status = "Completed"
)

// Statuses returns the workflow states in order
func Statuses() []Status {
	return []Status{
		StatusNotStarted,
		StatusStarted,
		StatusProcessing,
		StatusReview,
		StatusReviewCorrection,
		StatusCompleted,
	}
}

// Progress returns the completion percentage implied by a status
func (s Status) Progress() int {
	switch s {
	case StatusStarted:
		return 20
	case StatusProcessing:
		return 40
	case StatusReview:
		return 70
	case StatusReviewCorrection:
		return 85
	case StatusCompleted:
		return 100
	default:
		return 0
	}
}

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities returns the priority levels from lowest to highest
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Rank returns a numeric weight for sorting by priority.
// Unrecognized values rank 0 and sort after every known priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task represents one unit of work, either client-billable or personal
type Task struct {
	ID          int64    `json:"id" yaml:"id"`
	Kind        Kind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	ClientName  string   `json:"clientName,omitempty" yaml:"clientName,omitempty"`
	ProjectName string   `json:"projectName" yaml:"projectName"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Files       string   `json:"files,omitempty" yaml:"files,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	StartDate *Date    `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	DueDate   *Date    `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Status    Status   `json:"status" yaml:"status"`
	Priority  Priority `json:"priority" yaml:"priority"`

	// Monetary fields keep the legacy "<symbol><value>" text form
	TotalAmount       string `json:"totalAmount,omitempty" yaml:"totalAmount,omitempty"`
	AmountPaid        string `json:"amountPaid,omitempty" yaml:"amountPaid,omitempty"`
	OutstandingAmount string `json:"outstandingAmount,omitempty" yaml:"outstandingAmount,omitempty"`
	Currency          string `json:"currency,omitempty" yaml:"currency,omitempty"`
	PaymentProgress   int    `json:"paymentProgress,omitempty" yaml:"paymentProgress,omitempty"`

	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// IsCompleted returns true if the task is in the Completed state
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Name returns the label used in lists and notification text
func (t *Task) Name() string {
	if t.ProjectName != "" {
		return t.ProjectName
	}
	return t.ClientName
}

// Total returns the parsed total amount
func (t *Task) Total() money.Amount {
	return money.Parse(t.TotalAmount)
}

// Paid returns the parsed amount paid
func (t *Task) Paid() money.Amount {
	return money.Parse(t.AmountPaid)
}

// Outstanding returns the parsed outstanding amount
func (t *Task) Outstanding() money.Amount {
	return money.Parse(t.OutstandingAmount)
}

// HasPayment returns true if the task carries a total amount
func (t *Task) HasPayment() bool {
	return t.TotalAmount != ""
}

// SortKey returns the creation timestamp in milliseconds, falling back to
// the id, which is itself derived from the creation time.
func (t *Task) SortKey() int64 {
	if t.CreatedAt != nil && !t.CreatedAt.IsZero() {
		return t.CreatedAt.UnixMilli()
	}
	return t.ID
}

// DropZeroDates clears start and due dates that decoded to the zero date and
// reports whether any were cleared
func (t *Task) DropZeroDates() bool {
	dropped := false
	if t.StartDate != nil && t.StartDate.IsZero() {
		t.StartDate = nil
		dropped = true
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
		dropped = true
	}
	return dropped
}

// Clone returns a deep copy of the task
func (t Task) Clone() Task {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.StartDate != nil {
		d := *t.StartDate
		t.StartDate = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		t.CreatedAt = &c
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}
