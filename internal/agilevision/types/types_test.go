package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date

	assert.NoError(t, json.Unmarshal([]byte(`"2026-03-01"`), &d))
	assert.Equal(t, "2026-03-01", d.String())

	// Полная метка времени обрезается до даты
	assert.NoError(t, json.Unmarshal([]byte(`"2026-03-01T15:04:05Z"`), &d))
	assert.Equal(t, "2026-03-01", d.String())

	assert.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	err := json.Unmarshal([]byte(`"yesterday"`), &d)
	assert.ErrorIs(t, err, ErrInvalidDate)

	err = json.Unmarshal([]byte(`"2026-13-45"`), &d)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_MarshalJSON(t *testing.T) {
	var d Date
	bytes, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(bytes))

	d = Date{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	bytes, err = json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-03-01"`, string(bytes))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	assert.NoError(t, d.Scan(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-01", d.String())

	assert.NoError(t, d.Scan("2026-03-01 00:00:00+00:00"))
	assert.Equal(t, "2026-03-01", d.String())

	assert.NoError(t, d.Scan([]byte("2026-03-01")))
	assert.Equal(t, "2026-03-01", d.String())

	assert.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestDate_Compare(t *testing.T) {
	a := Date{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := Date{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.False(t, a.Before(a))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleDeveloper.Valid())
	assert.True(t, RoleProjectManager.Valid())
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("developer").Valid())
	assert.False(t, Role("").Valid())
}

func TestSprintStatus_Valid(t *testing.T) {
	assert.True(t, SprintActive.Valid())
	assert.True(t, SprintInactive.Valid())
	assert.True(t, SprintCompleted.Valid())
	assert.True(t, SprintDelayed.Valid())
	assert.False(t, SprintStatus("Paused").Valid())
	assert.False(t, SprintStatus("").Valid())
}

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskPlanned.Valid())
	assert.True(t, TaskInProgress.Valid())
	assert.True(t, TaskCompleted.Valid())
	assert.False(t, TaskStatus("InProgress").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskList_ValueScan(t *testing.T) {
	list := TaskList{{Name: "a", Status: TaskPlanned}}

	value, err := list.Value()
	assert.NoError(t, err)

	var restored TaskList
	assert.NoError(t, restored.Scan(value))
	assert.Len(t, restored, 1)
	assert.Equal(t, "a", restored[0].Name)

	// nil список сериализуется как пустой массив
	var empty TaskList
	value, err = empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(value.([]byte)))

	assert.NoError(t, restored.Scan(nil))
	assert.Empty(t, restored)
}

func TestEmailList_ValueScan(t *testing.T) {
	list := EmailList{"a@x.com", "b@x.com"}

	value, err := list.Value()
	assert.NoError(t, err)

	var restored EmailList
	assert.NoError(t, restored.Scan(value))
	assert.Equal(t, list, restored)

	assert.NoError(t, restored.Scan("[]"))
	assert.Empty(t, restored)

	assert.NoError(t, restored.Scan(nil))
	assert.Empty(t, restored)
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	var sl StringList

	assert.NoError(t, json.Unmarshal([]byte(`["a@x.com","b@x.com"]`), &sl))
	assert.Equal(t, StringList{"a@x.com", "b@x.com"}, sl)

	// Одиночная строка принимается как список из одного элемента
	assert.NoError(t, json.Unmarshal([]byte(`"a@x.com"`), &sl))
	assert.Equal(t, StringList{"a@x.com"}, sl)

	assert.Error(t, json.Unmarshal([]byte(`42`), &sl))
}
