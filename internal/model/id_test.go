package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDBumpsOnCollision(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	taken := map[int64]bool{1760000000000: true, 1760000000001: true}

	id := NewID(now, func(id int64) bool { return taken[id] })
	assert.Equal(t, int64(1760000000002), id)
	assert.Equal(t, int64(1760000000000), NewID(now, nil))
}

func TestNotificationFractionalID(t *testing.T) {
	var ns []Notification
	err := json.Unmarshal([]byte(`[
		{"id": 1760000000000.4821, "title": "Task Overdue", "message": "\"Logo\" is 2 days overdue", "type": "error", "date": "2026-03-10T12:00:00Z", "read": false},
		{"id": 1760000000001, "title": "Welcome", "message": "hi", "type": "info", "date": "2026-03-10T12:00:00Z", "read": true, "taskId": 42, "category": "overdue"}
	]`), &ns)
	require.NoError(t, err)
	require.Len(t, ns, 2)

	assert.Equal(t, int64(1760000000000), ns[0].ID)
	assert.Equal(t, "Task Overdue", ns[0].Title)
	assert.Equal(t, SeverityError, ns[0].Type)
	assert.Equal(t, int64(1760000000001), ns[1].ID)
	assert.Equal(t, int64(42), ns[1].TaskID)
	assert.Equal(t, CategoryOverdue, ns[1].Category)
	assert.True(t, ns[1].Read)
}

func TestMessageFractionalID(t *testing.T) {
	var m Message
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1760000000000.9, "from": "Maayo", "subject": "Welcome", "body": "hi", "date": "2026-03-10T12:00:00Z", "read": false}`), &m))
	assert.Equal(t, int64(1760000000000), m.ID)
	assert.Equal(t, "Maayo", m.From)

	assert.Error(t, json.Unmarshal([]byte(`{"id": "abc"}`), &m))
}
