package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDateJSON(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"projectName":"a","dueDate":"2026-10-20","startDate":"2026-10-01T08:00:00Z"}`), &task))
	require.NotNil(t, task.DueDate)
	assert.Equal(t, NewDate(2026, time.October, 20), *task.DueDate)
	assert.Equal(t, NewDate(2026, time.October, 1), *task.StartDate)

	data, err := json.Marshal(task.DueDate)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-20"`, string(data))
}

func TestDateUnreadableValuesDecodeAsZero(t *testing.T) {
	inputs := []string{
		`{"id":1,"projectName":"a","dueDate":"2026/10/20"}`,
		`{"id":1,"projectName":"a","dueDate":20261020}`,
		`{"id":1,"projectName":"a","dueDate":""}`,
	}
	for _, in := range inputs {
		var task Task
		require.NoError(t, json.Unmarshal([]byte(in), &task), in)
		require.NotNil(t, task.DueDate, in)
		assert.True(t, task.DueDate.IsZero(), in)
		assert.True(t, task.DropZeroDates(), in)
		assert.Nil(t, task.DueDate, in)
	}

	var tasks []Task
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"projectName":"keep"},{"id":2,"projectName":"odd","startDate":"soon"}]`), &tasks))
	assert.Len(t, tasks, 2)
}

func TestDateYAML(t *testing.T) {
	var task Task
	require.NoError(t, yaml.Unmarshal([]byte("id: 1\nprojectName: a\ndueDate: \"2026-10-20\"\nstartDate: later\n"), &task))
	require.NotNil(t, task.DueDate)
	assert.Equal(t, NewDate(2026, time.October, 20), *task.DueDate)
	require.NotNil(t, task.StartDate)
	assert.True(t, task.StartDate.IsZero())

	out, err := yaml.Marshal(task.DueDate)
	require.NoError(t, err)
	var back Date
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, *task.DueDate, back)
}

func TestDropZeroDatesKeepsRealDates(t *testing.T) {
	due := NewDate(2026, time.October, 20)
	task := Task{DueDate: &due}
	assert.False(t, task.DropZeroDates())
	assert.Equal(t, &due, task.DueDate)
}
