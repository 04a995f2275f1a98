// Package backup writes and restores the whole application state as a single
// JSON or YAML document.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dori/kairo/internal/finance"
	"github.com/dori/kairo/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Version is the document format version written by Export
const Version = "1"

// ErrUnsupportedVersion is returned when importing a document from a newer format
var ErrUnsupportedVersion = errors.New("unsupported backup version")

// Snapshot is the state captured in a backup
type Snapshot struct {
	ClientTasks   []model.Task
	PersonalTasks []model.Task
	Settings      model.Settings
	Notifications []model.Notification
	Messages      []model.Message
}

// Summary is the financial overview of one collection, in text form
type Summary struct {
	TotalRevenue     string `json:"totalRevenue" yaml:"totalRevenue"`
	TotalPaid        string `json:"totalPaid" yaml:"totalPaid"`
	TotalOutstanding string `json:"totalOutstanding" yaml:"totalOutstanding"`
	PricedTasks      int    `json:"pricedTasks" yaml:"pricedTasks"`
}

// Financial holds the per-kind summaries. It is informational and ignored on import.
type Financial struct {
	Client   Summary `json:"client" yaml:"client"`
	Personal Summary `json:"personal" yaml:"personal"`
}

// Document is the on-disk backup format
type Document struct {
	ID            string               `json:"id" yaml:"id"`
	Version       string               `json:"version" yaml:"version"`
	ExportedAt    time.Time            `json:"exportedAt" yaml:"exportedAt"`
	ClientTasks   []model.Task         `json:"clientTasks" yaml:"clientTasks"`
	PersonalTasks []model.Task         `json:"personalTasks" yaml:"personalTasks"`
	Settings      model.Settings       `json:"settings" yaml:"settings"`
	Notifications []model.Notification `json:"notifications" yaml:"notifications"`
	Messages      []model.Message      `json:"messages" yaml:"messages"`
	Financial     Financial            `json:"financial" yaml:"financial"`
}

// Build assembles a document from a snapshot
func Build(s Snapshot, now time.Time) Document {
	return Document{
		ID:            uuid.New().String(),
		Version:       Version,
		ExportedAt:    now.UTC(),
		ClientTasks:   orEmpty(s.ClientTasks),
		PersonalTasks: orEmpty(s.PersonalTasks),
		Settings:      s.Settings,
		Notifications: orEmpty(s.Notifications),
		Messages:      orEmpty(s.Messages),
		Financial: Financial{
			Client:   summarize(s.ClientTasks),
			Personal: summarize(s.PersonalTasks),
		},
	}
}

func summarize(tasks []model.Task) Summary {
	o := finance.Aggregate(tasks)
	return Summary{
		TotalRevenue:     o.TotalRevenue.String(),
		TotalPaid:        o.TotalPaid.String(),
		TotalOutstanding: o.TotalOutstanding.String(),
		PricedTasks:      o.PricedTasks,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Snapshot returns the restorable part of a document
func (d Document) Snapshot() Snapshot {
	return Snapshot{
		ClientTasks:   orEmpty(d.ClientTasks),
		PersonalTasks: orEmpty(d.PersonalTasks),
		Settings:      d.Settings,
		Notifications: orEmpty(d.Notifications),
		Messages:      orEmpty(d.Messages),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Export writes a document to path, as YAML when the extension is .yaml or
// .yml and as indented JSON otherwise
func Export(fs afero.Fs, path string, doc Document) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	// Replace any previous backup only once the new one is fully written
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import reads a document written by Export
func Import(fs afero.Fs, path string) (Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read backup: %w", err)
	}

	// Settings missing from the document keep their defaults
	doc := Document{Settings: model.DefaultSettings()}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to decode backup %s: %w", path, err)
	}

	if doc.Version != "" && doc.Version != Version {
		return Document{}, fmt.Errorf("%s has version %q: %w", path, doc.Version, ErrUnsupportedVersion)
	}
	return doc, nil
}
