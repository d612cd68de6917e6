package business

import (
	"errors"
	"testing"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/stretchr/testify/assert"
)

func date(s string) types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return types.Date{Time: t}
}

func testSprint() dao.Sprint {
	return dao.Sprint{
		Id:        dao.GenUUID(),
		Name:      "Release hardening",
		StartDate: date("2026-03-01"),
		EndDate:   date("2026-03-15"),
		Status:    types.SprintActive,
	}
}

func testTask() types.Task {
	return types.Task{
		Name:       "Fix login redirect",
		StartDate:  date("2026-03-02"),
		EndDate:    date("2026-03-05"),
		AssignedTo: []string{"dev@example.com"},
	}
}

func assertDefined(t *testing.T, err error, expected apierrors.DefinedError) apierrors.DefinedError {
	t.Helper()
	var defined apierrors.DefinedError
	if !errors.As(err, &defined) {
		t.Fatalf("expected DefinedError, got %v", err)
	}
	assert.Equal(t, expected.Code, defined.Code)
	return defined
}

func TestValidateSprintDates(t *testing.T) {
	assert.NoError(t, ValidateSprintDates(date("2026-03-01"), date("2026-03-15")))

	err := ValidateSprintDates(date("2026-03-15"), date("2026-03-01"))
	assertDefined(t, err, apierrors.ErrSprintInvalidDateRange)

	// Равные даты тоже некорректны
	err = ValidateSprintDates(date("2026-03-01"), date("2026-03-01"))
	assertDefined(t, err, apierrors.ErrSprintInvalidDateRange)
}

func TestValidateSprintStatus(t *testing.T) {
	for _, status := range []types.SprintStatus{types.SprintActive, types.SprintInactive, types.SprintCompleted, types.SprintDelayed} {
		assert.NoError(t, ValidateSprintStatus(status))
	}

	err := ValidateSprintStatus("Done")
	assertDefined(t, err, apierrors.ErrSprintInvalidStatus)
}

func TestValidateSprint_DefaultStatus(t *testing.T) {
	sprint := testSprint()
	sprint.Status = ""

	assert.NoError(t, ValidateSprint(&sprint))
	assert.Equal(t, types.SprintInactive, sprint.Status)
}

func TestValidateSprint_NormalizesAssignees(t *testing.T) {
	sprint := testSprint()
	sprint.AssignedTo = types.EmailList{" dev@example.com ", "", "qa@example.com"}

	assert.NoError(t, ValidateSprint(&sprint))
	assert.Equal(t, types.EmailList{"dev@example.com", "qa@example.com"}, sprint.AssignedTo)
}

func TestValidateSprint_RecomputesCounts(t *testing.T) {
	sprint := testSprint()
	sprint.TasksList = types.TaskList{
		{Name: "a", Status: types.TaskCompleted},
		{Name: "b", Status: types.TaskPlanned},
		{Name: "c", Status: types.TaskCompleted},
	}
	// Заведомо неверные счетчики должны быть перезаписаны
	sprint.Tasks = 100
	sprint.Completed = 100

	assert.NoError(t, ValidateSprint(&sprint))
	assert.Equal(t, 3, sprint.Tasks)
	assert.Equal(t, 2, sprint.Completed)
}

func TestValidateTask_Valid(t *testing.T) {
	sprint := testSprint()
	task := testTask()

	assert.NoError(t, ValidateTask(&task, &sprint))
	assert.Equal(t, types.TaskPlanned, task.Status)
}

func TestValidateTask_MissingFields(t *testing.T) {
	sprint := testSprint()

	task := types.Task{AssignedTo: []string{"dev@example.com"}}
	defined := assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskMissingFields)
	assert.Contains(t, defined.Details, "name")
	assert.Contains(t, defined.Details, "startDate")
	assert.Contains(t, defined.Details, "endDate")

	// Имя из одних пробелов считается пустым
	task = testTask()
	task.Name = "   "
	defined = assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskMissingFields)
	assert.Contains(t, defined.Details, "name")
}

func TestValidateTask_NoAssignee(t *testing.T) {
	sprint := testSprint()

	task := testTask()
	task.AssignedTo = nil
	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskNoAssignee)

	task = testTask()
	task.AssignedTo = []string{"  ", ""}
	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskNoAssignee)
}

func TestValidateTask_InvalidStatus(t *testing.T) {
	sprint := testSprint()
	task := testTask()
	task.Status = "Done"

	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskInvalidStatus)
}

func TestValidateTask_DateOrder(t *testing.T) {
	sprint := testSprint()
	task := testTask()
	task.StartDate = date("2026-03-10")
	task.EndDate = date("2026-03-05")

	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskDateOrder)

	// Однодневная задача допустима
	task = testTask()
	task.StartDate = date("2026-03-05")
	task.EndDate = date("2026-03-05")
	assert.NoError(t, ValidateTask(&task, &sprint))
}

func TestValidateTask_OutsideSprintWindow(t *testing.T) {
	sprint := testSprint()

	task := testTask()
	task.StartDate = date("2026-02-20")
	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskOutsideSprint)

	task = testTask()
	task.EndDate = date("2026-04-01")
	assertDefined(t, ValidateTask(&task, &sprint), apierrors.ErrTaskOutsideSprint)

	// Границы окна спринта включительно
	task = testTask()
	task.StartDate = sprint.StartDate
	task.EndDate = sprint.EndDate
	assert.NoError(t, ValidateTask(&task, &sprint))
}

func TestNormalizeAssignees(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, NormalizeAssignees([]string{" a@x.com", "", "b@x.com ", "  "}))
	assert.Empty(t, NormalizeAssignees(nil))
}

func TestDiffNewAssignees(t *testing.T) {
	added := DiffNewAssignees([]string{"a@x.com"}, []string{"a@x.com", "b@x.com"})
	assert.Equal(t, []string{"b@x.com"}, added)

	// Удаленные адреса не считаются новыми
	added = DiffNewAssignees([]string{"a@x.com", "b@x.com"}, []string{"b@x.com"})
	assert.Empty(t, added)

	// Порядок нового списка сохраняется
	added = DiffNewAssignees(nil, []string{"c@x.com", "a@x.com", "b@x.com"})
	assert.Equal(t, []string{"c@x.com", "a@x.com", "b@x.com"}, added)

	assert.Empty(t, DiffNewAssignees([]string{"a@x.com"}, []string{"a@x.com"}))
}

func TestRecomputeCounts(t *testing.T) {
	sprint := testSprint()
	sprint.RecomputeCounts()
	assert.Equal(t, 0, sprint.Tasks)
	assert.Equal(t, 0, sprint.Completed)

	sprint.TasksList = types.TaskList{
		{Name: "a", Status: types.TaskInProgress},
		{Name: "b", Status: types.TaskCompleted},
	}
	sprint.RecomputeCounts()
	assert.Equal(t, 2, sprint.Tasks)
	assert.Equal(t, 1, sprint.Completed)
}
