// Бизнес-правила спринтов и задач: валидация инвариантов агрегата и вычисление
// производных полей. Все функции чистые и выполняются перед любой записью
// спринта независимо от пути мутации (создание, обновление, операции с задачами).
//
// Основные возможности:
//   - Проверка диапазона дат и статуса спринта.
//   - Проверка задачи относительно окна дат родительского спринта.
//   - Нормализация списка исполнителей.
//   - Вычисление разницы списков исполнителей для почтовых уведомлений.
package business

import (
	"strings"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/types"
)

// ValidateSprintDates проверяет, что дата окончания спринта строго позже даты
// начала.
func ValidateSprintDates(start, end types.Date) error {
	if !end.After(start) {
		return apierrors.ErrSprintInvalidDateRange.WithDetails(map[string]string{
			"startDate": start.String(),
			"endDate":   end.String(),
		})
	}
	return nil
}

// ValidateSprintStatus проверяет, что статус входит в допустимый набор.
func ValidateSprintStatus(status types.SprintStatus) error {
	if !status.Valid() {
		return apierrors.ErrSprintInvalidStatus.WithDetails(map[string]string{
			"status": string(status),
		})
	}
	return nil
}

// ValidateSprint применяет все инварианты спринта и пересчитывает производные
// счетчики. Вызывается на каждом пути записи агрегата.
func ValidateSprint(sprint *dao.Sprint) error {
	if sprint.Status == "" {
		sprint.Status = types.SprintInactive
	}
	if err := ValidateSprintStatus(sprint.Status); err != nil {
		return err
	}
	if err := ValidateSprintDates(sprint.StartDate, sprint.EndDate); err != nil {
		return err
	}
	sprint.AssignedTo = NormalizeAssignees(sprint.AssignedTo)
	sprint.RecomputeCounts()
	return nil
}

// NormalizeAssignees обрезает пробелы и выбрасывает пустые адреса.
func NormalizeAssignees(in []string) []string {
	out := make([]string, 0, len(in))
	for _, email := range in {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		out = append(out, email)
	}
	return out
}

// ValidateTask проверяет задачу относительно родительского спринта и
// нормализует её поля. Идентификатор задачи не трогает.
func ValidateTask(task *types.Task, sprint *dao.Sprint) error {
	task.Name = strings.TrimSpace(task.Name)
	task.Description = strings.TrimSpace(task.Description)
	task.DateExtensionReason = strings.TrimSpace(task.DateExtensionReason)

	missing := map[string]string{}
	if task.Name == "" {
		missing["name"] = "Task name is required"
	}
	if task.StartDate.IsZero() {
		missing["startDate"] = "Start date is required"
	}
	if task.EndDate.IsZero() {
		missing["endDate"] = "End date is required"
	}
	if len(missing) > 0 {
		return apierrors.ErrTaskMissingFields.WithDetails(missing)
	}

	task.AssignedTo = NormalizeAssignees(task.AssignedTo)
	if len(task.AssignedTo) == 0 {
		return apierrors.ErrTaskNoAssignee.WithDetails(map[string]string{
			"assignedTo": "No developers assigned",
		})
	}

	if task.Status == "" {
		task.Status = types.TaskPlanned
	}
	if !task.Status.Valid() {
		return apierrors.ErrTaskInvalidStatus.WithDetails(map[string]string{
			"status": string(task.Status),
		})
	}

	if task.EndDate.Before(task.StartDate) {
		return apierrors.ErrTaskDateOrder.WithDetails(map[string]string{
			"startDate": task.StartDate.String(),
			"endDate":   task.EndDate.String(),
		})
	}

	if task.StartDate.Before(sprint.StartDate) || task.EndDate.After(sprint.EndDate) {
		return apierrors.ErrTaskOutsideSprint.WithDetails(map[string]string{
			"taskStartDate":   task.StartDate.String(),
			"taskEndDate":     task.EndDate.String(),
			"sprintStartDate": sprint.StartDate.String(),
			"sprintEndDate":   sprint.EndDate.String(),
		})
	}

	return nil
}

// DiffNewAssignees возвращает адреса из newList, отсутствующие в oldList.
// Порядок newList сохраняется. Используется только для выбора получателей
// уведомлений о назначении на спринт.
func DiffNewAssignees(oldList, newList []string) []string {
	old := make(map[string]struct{}, len(oldList))
	for _, email := range oldList {
		old[email] = struct{}{}
	}

	var added []string
	for _, email := range newList {
		if _, ok := old[email]; !ok {
			added = append(added, email)
		}
	}
	return added
}
