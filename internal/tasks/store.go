// Package tasks holds the in-memory task collections and keeps them
// synchronized with persistent storage on every mutation.
package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/money"
	"github.com/dori/kairo/internal/urgency"
)

// Storage keys for the two task collections
const (
	ClientTasksKey   = "clientTasks"
	PersonalTasksKey = "personalTasks"
)

// KeyFor returns the storage key of a kind's collection
func KeyFor(kind model.Kind) string {
	if kind == model.KindPersonal {
		return PersonalTasksKey
	}
	return ClientTasksKey
}

var (
	// ErrNotFound is returned when no task has the requested id
	ErrNotFound = errors.New("task not found")
	// ErrNoTotal is returned when recording a payment on a task without a total
	ErrNoTotal = errors.New("task has no total amount")
)

// Saver persists a collection under a key
type Saver interface {
	Save(key string, v any) error
}

// Draft is the user input for a new task
type Draft struct {
	Kind        model.Kind `validate:"required,kind"`
	ClientName  string     `validate:"required_if=Kind client"`
	ProjectName string     `validate:"required"`
	Category    string
	Description string
	Files       string
	Tags        []string
	StartDate   *model.Date
	DueDate     *model.Date
	Status      model.Status   `validate:"omitempty,status"`
	Priority    model.Priority `validate:"omitempty,priority"`
	TotalAmount string
	AmountPaid  string
}

// Patch is a partial update; nil fields are left untouched
type Patch struct {
	ClientName  *string
	ProjectName *string
	Category    *string
	Description *string
	Files       *string
	Tags        *[]string
	StartDate   *model.Date
	ClearStart  bool
	DueDate     *model.Date
	ClearDue    bool
	Status      *model.Status
	Priority    *model.Priority
	TotalAmount *string
	AmountPaid  *string
}

// editable is the subset of a task re-validated after a patch
type editable struct {
	Kind        model.Kind `validate:"required,kind"`
	ClientName  string     `validate:"required_if=Kind client"`
	ProjectName string     `validate:"required"`
}

// statusField and priorityField validate enum values a patch sets. Stored
// values are not re-checked, so tasks with an unknown priority stay editable.
type statusField struct {
	Status model.Status `validate:"required,status"`
}

type priorityField struct {
	Priority model.Priority `validate:"required,priority"`
}

// checkPatch validates the merged task and the enum values set by p
func checkPatch(t *model.Task, p Patch) error {
	checks := []any{editable{
		Kind:        t.Kind,
		ClientName:  t.ClientName,
		ProjectName: t.ProjectName,
	}}
	if p.Status != nil {
		checks = append(checks, statusField{Status: *p.Status})
	}
	if p.Priority != nil {
		checks = append(checks, priorityField{Priority: *p.Priority})
	}

	verr := &ValidationError{}
	for _, v := range checks {
		err := check(v)
		var fieldErr *ValidationError
		switch {
		case err == nil:
		case errors.As(err, &fieldErr):
			verr.Problems = append(verr.Problems, fieldErr.Problems...)
		default:
			return err
		}
	}
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// Store holds the client and personal task collections
type Store struct {
	mu       sync.Mutex
	lists    map[model.Kind][]model.Task
	saver    Saver
	now      func() time.Time
	logger   *slog.Logger
	onChange []func(model.Kind)
}

// New creates a store seeded with previously stored collections
func New(client, personal []model.Task, saver Saver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		lists:  make(map[model.Kind][]model.Task, 2),
		saver:  saver,
		now:    time.Now,
		logger: logger,
	}
	s.lists[model.KindClient] = s.withKind(client, model.KindClient)
	s.lists[model.KindPersonal] = s.withKind(personal, model.KindPersonal)
	return s
}

// withKind copies tasks, stamping the kind of the collection they came from.
// Dates that could not be read are dropped with a warning.
func (s *Store) withKind(tasks []model.Task, kind model.Kind) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		t = t.Clone()
		t.Kind = kind
		if t.DropZeroDates() {
			s.logger.Warn("dropped unreadable task date", "id", t.ID, "kind", kind)
		}
		out = append(out, t)
	}
	return out
}

// SetClock replaces the time source
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current calendar date in local time
func (s *Store) Today() model.Date {
	return model.DateOf(s.now())
}

// OnChange registers a callback invoked after every mutation
func (s *Store) OnChange(fn func(model.Kind)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Add validates a draft and stores it as a new task
func (s *Store) Add(d Draft) (model.Task, error) {
	d.ProjectName = strings.TrimSpace(d.ProjectName)
	d.ClientName = strings.TrimSpace(d.ClientName)
	if d.Status == "" {
		d.Status = model.StatusNotStarted
	}
	if d.Priority == "" {
		d.Priority = model.PriorityMedium
	}
	if err := check(d); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	now := s.now()
	t := model.Task{
		ID: model.NewID(now, func(id int64) bool {
			_, i := s.locate(id)
			return i >= 0
		}),
		Kind:        d.Kind,
		ClientName:  d.ClientName,
		ProjectName: d.ProjectName,
		Category:    d.Category,
		Description: d.Description,
		Files:       d.Files,
		Tags:        cleanTags(d.Tags),
		StartDate:   d.StartDate,
		DueDate:     d.DueDate,
		Status:      d.Status,
		Priority:    d.Priority,
		TotalAmount: d.TotalAmount,
		AmountPaid:  d.AmountPaid,
		CreatedAt:   &now,
	}
	if d.Kind == model.KindPersonal {
		t.ClientName = ""
	}
	if t.IsCompleted() {
		t.CompletedAt = &now
	}
	t.Priority = urgency.Derive(&t, model.DateOf(now))
	applyPayment(&t)

	s.lists[d.Kind] = append(s.lists[d.Kind], t)
	s.persist(d.Kind)
	s.mu.Unlock()

	s.changed(d.Kind)
	return t.Clone(), nil
}

// Update merges a patch into a task and re-derives its computed fields
func (s *Store) Update(id int64, p Patch) (model.Task, error) {
	s.mu.Lock()
	kind, i := s.locate(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("update %d: %w", id, ErrNotFound)
	}

	old := s.lists[kind][i]
	t := old.Clone()
	p.apply(&t)

	if err := checkPatch(&t, p); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}

	now := s.now()
	switch {
	case t.IsCompleted() && (!old.IsCompleted() || t.CompletedAt == nil):
		t.CompletedAt = &now
	case !t.IsCompleted():
		t.CompletedAt = nil
	}
	t.Priority = urgency.Derive(&t, model.DateOf(now))
	applyPayment(&t)

	s.lists[kind][i] = t
	s.persist(kind)
	s.mu.Unlock()

	s.changed(kind)
	return t.Clone(), nil
}

func (p Patch) apply(t *model.Task) {
	setString := func(dst *string, src *string, trim bool) {
		if src == nil {
			return
		}
		if trim {
			*dst = strings.TrimSpace(*src)
			return
		}
		*dst = *src
	}
	setString(&t.ClientName, p.ClientName, true)
	setString(&t.ProjectName, p.ProjectName, true)
	setString(&t.Category, p.Category, false)
	setString(&t.Description, p.Description, false)
	setString(&t.Files, p.Files, false)
	setString(&t.TotalAmount, p.TotalAmount, true)
	setString(&t.AmountPaid, p.AmountPaid, true)

	if p.Tags != nil {
		t.Tags = cleanTags(*p.Tags)
	}
	if p.ClearStart {
		t.StartDate = nil
	} else if p.StartDate != nil {
		d := *p.StartDate
		t.StartDate = &d
	}
	if p.ClearDue {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// Complete moves a task to Completed
func (s *Store) Complete(id int64) (model.Task, error) {
	status := model.StatusCompleted
	return s.Update(id, Patch{Status: &status})
}

// RecordPayment sets the amount paid on a priced task
func (s *Store) RecordPayment(id int64, amountPaid string) (model.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return model.Task{}, err
	}
	if !t.HasPayment() {
		return model.Task{}, fmt.Errorf("record payment on %d: %w", id, ErrNoTotal)
	}
	return s.Update(id, Patch{AmountPaid: &amountPaid})
}

// Delete removes a task from the collection of the given kind
func (s *Store) Delete(id int64, kind model.Kind) error {
	s.mu.Lock()
	i := s.indexOf(kind, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	s.lists[kind] = slices.Delete(slices.Clone(s.lists[kind]), i, i+1)
	s.persist(kind)
	s.mu.Unlock()

	s.changed(kind)
	return nil
}

// Replace swaps a whole collection, as done by a backup import
func (s *Store) Replace(kind model.Kind, tasks []model.Task) {
	s.mu.Lock()
	s.lists[kind] = s.withKind(tasks, kind)
	s.persist(kind)
	s.mu.Unlock()

	s.changed(kind)
}

// Reset swaps both collections with ones read back from storage, without
// writing them again
func (s *Store) Reset(client, personal []model.Task) {
	s.mu.Lock()
	s.lists[model.KindClient] = s.withKind(client, model.KindClient)
	s.lists[model.KindPersonal] = s.withKind(personal, model.KindPersonal)
	s.mu.Unlock()

	s.changed(model.KindClient)
	s.changed(model.KindPersonal)
}

// Get returns a task from either collection
func (s *Store) Get(id int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, i := s.locate(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return s.lists[kind][i].Clone(), nil
}

// List returns a copy of one collection in insertion order
func (s *Store) List(kind model.Kind) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.lists[kind])
}

// All returns client tasks followed by personal tasks
func (s *Store) All() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := cloneAll(s.lists[model.KindClient])
	return append(all, cloneAll(s.lists[model.KindPersonal])...)
}

// Sorted returns every task in urgency order
func (s *Store) Sorted() []model.Task {
	return urgency.Sort(s.All(), s.Today())
}

// ByStatus returns the tasks in a given status
func (s *Store) ByStatus(status model.Status) []model.Task {
	var out []model.Task
	for _, t := range s.All() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Overdue returns open tasks past their due date
func (s *Store) Overdue() []model.Task {
	return urgency.Overdue(s.All(), s.Today())
}

// DueSoon returns open tasks due within the due-soon window
func (s *Store) DueSoon() []model.Task {
	return urgency.DueSoon(s.All(), s.Today())
}

// Stats summarizes both collections
func (s *Store) Stats() urgency.Stats {
	return urgency.Summarize(s.All(), s.Today())
}

// Tags returns every distinct tag in use, sorted
func (s *Store) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, t := range s.All() {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func (s *Store) locate(id int64) (model.Kind, int) {
	for _, kind := range model.Kinds() {
		if i := s.indexOf(kind, id); i >= 0 {
			return kind, i
		}
	}
	return "", -1
}

func (s *Store) indexOf(kind model.Kind, id int64) int {
	return slices.IndexFunc(s.lists[kind], func(t model.Task) bool { return t.ID == id })
}

// persist writes a collection. Failures are logged; memory stays authoritative.
func (s *Store) persist(kind model.Kind) {
	if s.saver == nil {
		return
	}
	list := s.lists[kind]
	if list == nil {
		list = []model.Task{}
	}
	if err := s.saver.Save(KeyFor(kind), list); err != nil {
		s.logger.Warn("failed to persist tasks", "kind", kind, "error", err)
	}
}

func (s *Store) changed(kind model.Kind) {
	s.mu.Lock()
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(kind)
	}
}

// applyPayment recomputes outstanding amount and progress from total and paid
func applyPayment(t *model.Task) {
	if !t.HasPayment() {
		t.OutstandingAmount = ""
		t.PaymentProgress = 0
		return
	}
	total := t.Total()
	paid := t.Paid()
	outstanding := total.Sub(paid).ClampZero()
	outstanding.Currency = total.Currency

	t.OutstandingAmount = outstanding.String()
	t.PaymentProgress = money.Progress(total, paid)
	t.Currency = total.Currency
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

func cloneAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
