package dao

import (
	"strings"
	"testing"

	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/stretchr/testify/assert"
)

func TestGenPasswordHash(t *testing.T) {
	hash := GenPasswordHash("secret123")
	assert.True(t, strings.HasPrefix(hash, "pbkdf2_sha256$260000$"))
	assert.Len(t, strings.Split(hash, "$"), 4)

	// Соль случайная, хэши одного пароля различаются
	assert.NotEqual(t, hash, GenPasswordHash("secret123"))
}

func TestCheckPassword(t *testing.T) {
	hash := GenPasswordHash("secret123")

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("secret124", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("secret123", "not-a-hash"))
	assert.False(t, CheckPassword("secret123", "pbkdf2_sha256$abc$salt$hash"))
}

func TestGenPassword(t *testing.T) {
	pass := GenPassword()
	assert.Len(t, pass, 12)
	assert.NotEqual(t, pass, GenPassword())
}

func TestSprintFindTask(t *testing.T) {
	first := GenUUID()
	second := GenUUID()
	sprint := Sprint{
		TasksList: types.TaskList{
			{Id: first, Name: "a"},
			{Id: second, Name: "b"},
		},
	}

	assert.Equal(t, 0, sprint.FindTask(first))
	assert.Equal(t, 1, sprint.FindTask(second))
	assert.Equal(t, -1, sprint.FindTask(GenUUID()))
}

func TestSprintRecomputeCounts(t *testing.T) {
	sprint := Sprint{
		TasksList: types.TaskList{
			{Name: "a", Status: types.TaskCompleted},
			{Name: "b", Status: types.TaskInProgress},
			{Name: "c", Status: types.TaskCompleted},
		},
		Tasks:     42,
		Completed: 42,
	}

	sprint.RecomputeCounts()
	assert.Equal(t, 3, sprint.Tasks)
	assert.Equal(t, 2, sprint.Completed)
}
