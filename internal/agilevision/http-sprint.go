// Обработчики спринтов и задач. Спринт хранится как единый агрегат, все
// мутации проходят через бизнес-валидацию и пересчет производных счетчиков
// перед записью.
//
// Основные возможности:
//   - CRUD спринтов, список отсортирован по дате создания.
//   - Операции над задачами внутри спринта: добавление, обновление, удаление.
//   - Частичные обновления: меняются только переданные клиентом поля.
//   - Почтовые уведомления новым исполнителям спринта.
package agilevision

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/agile-vision/agilevision/internal/agilevision/business"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type SprintContext struct {
	echo.Context
	Sprint dao.Sprint
}

// SprintMiddleware загружает спринт по :sprintId в контекст запроса.
// Некорректный идентификатор неотличим от отсутствующего спринта.
func (s *Services) SprintMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.FromString(c.Param("sprintId"))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrSprintNotFound)
		}

		sprint, err := dao.GetSprint(s.db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EErrorDefined(c, apierrors.ErrSprintNotFound)
			}
			return EError(c, err)
		}

		return next(SprintContext{c, *sprint})
	}
}

// getSprintList godoc
// @id getSprintList
// @Summary Спринты: список спринтов
// @Description Возвращает все спринты, отсортированные по дате создания
// @Tags Sprints
// @Produce json
// @Success 200 {array} dao.Sprint "Список спринтов"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints [get]
func (s *Services) getSprintList(c echo.Context) error {
	var sprints []dao.Sprint
	if err := s.db.Order("created_at DESC").Find(&sprints).Error; err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, sprints)
}

// createSprint godoc
// @id createSprint
// @Summary Спринты: создание спринта
// @Description Создает спринт и уведомляет назначенных исполнителей
// @Tags Sprints
// @Accept json
// @Produce json
// @Param data body requestSprint true "Данные спринта"
// @Success 201 {object} dao.Sprint "Созданный спринт"
// @Failure 400 {object} apierrors.DefinedError "Некорректные данные спринта"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints [post]
func (s *Services) createSprint(c echo.Context) error {
	var req requestSprint
	if err := c.Bind(&req); err != nil {
		return bindError(c, err, apierrors.ErrSprintBadRequest)
	}

	// Пустая строка даты разбирается в нулевую Date и тоже означает
	// отсутствующее поле
	missingStart := req.StartDate == nil || req.StartDate.IsZero()
	missingEnd := req.EndDate == nil || req.EndDate.IsZero()
	if req.Name == "" || missingStart || missingEnd {
		return EErrorDefined(c, apierrors.ErrSprintFieldsRequired.WithDetails(map[string]string{
			"name":      boolString(req.Name == ""),
			"startDate": boolString(missingStart),
			"endDate":   boolString(missingEnd),
		}))
	}

	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrSprintInvalidStatus.WithDetails(map[string]string{
			"status": string(req.Status),
		}))
	}

	sprint := req.toDao()
	for i := range sprint.TasksList {
		if sprint.TasksList[i].Id == uuid.Nil {
			sprint.TasksList[i].Id = dao.GenUUID()
		}
	}

	if err := business.ValidateSprint(&sprint); err != nil {
		return EError(c, err)
	}

	if err := s.db.Create(&sprint).Error; err != nil {
		return EError(c, err)
	}

	// Дожидаемся рассылки, ошибки отправки не влияют на ответ
	if len(sprint.AssignedTo) > 0 {
		s.emailService.SprintAssignment(sprint.AssignedTo, &sprint)
	}

	return c.JSON(http.StatusCreated, sprint)
}

// updateSprint godoc
// @id updateSprint
// @Summary Спринты: обновление спринта
// @Description Частично обновляет спринт, уведомляет только новых исполнителей
// @Tags Sprints
// @Accept json
// @Produce json
// @Param sprintId path string true "ID спринта"
// @Param data body requestSprint true "Изменяемые поля спринта"
// @Success 200 {object} dao.Sprint "Обновленный спринт"
// @Failure 400 {object} apierrors.DefinedError "Некорректные данные спринта"
// @Failure 404 {object} apierrors.DefinedError "Спринт не найден"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints/{sprintId} [put]
func (s *Services) updateSprint(c echo.Context) error {
	sprint := c.(SprintContext).Sprint
	priorAssignees := append([]string(nil), sprint.AssignedTo...)

	var req requestSprint
	fields, err := BindData(c, &req)
	if err != nil {
		return bindError(c, err, apierrors.ErrSprintBadRequest)
	}

	for _, field := range fields {
		switch field {
		case "name":
			sprint.Name = req.Name
		case "startDate":
			sprint.StartDate = *req.StartDate
		case "endDate":
			sprint.EndDate = *req.EndDate
		case "status":
			sprint.Status = req.Status
		case "assignedTo":
			sprint.AssignedTo = types.EmailList(req.AssignedTo)
		case "details":
			sprint.Details = req.Details
		case "dateExtensionReason":
			sprint.DateExtensionReason = req.DateExtensionReason
		case "delayReason":
			sprint.DelayReason = req.DelayReason
		case "tasksList":
			sprint.TasksList = types.TaskList(req.TasksList)
			for i := range sprint.TasksList {
				if sprint.TasksList[i].Id == uuid.Nil {
					sprint.TasksList[i].Id = dao.GenUUID()
				}
			}
		}
	}

	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrSprintInvalidStatus.WithDetails(map[string]string{
			"status": string(req.Status),
		}))
	}

	if err := business.ValidateSprint(&sprint); err != nil {
		return EError(c, err)
	}

	if err := s.db.Save(&sprint).Error; err != nil {
		return EError(c, err)
	}

	// Уведомляем только впервые назначенных на спринт
	if newAssignees := business.DiffNewAssignees(priorAssignees, sprint.AssignedTo); len(newAssignees) > 0 {
		s.emailService.SprintAssignment(newAssignees, &sprint)
	}

	return c.JSON(http.StatusOK, sprint)
}

// deleteSprint godoc
// @id deleteSprint
// @Summary Спринты: удаление спринта
// @Tags Sprints
// @Produce json
// @Param sprintId path string true "ID спринта"
// @Success 200 {object} map[string]string "Сообщение об удалении"
// @Failure 404 {object} apierrors.DefinedError "Спринт не найден"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints/{sprintId} [delete]
func (s *Services) deleteSprint(c echo.Context) error {
	sprint := c.(SprintContext).Sprint

	if err := s.db.Delete(&sprint).Error; err != nil {
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Sprint deleted successfully",
	})
}

// addTask godoc
// @id addTask
// @Summary Задачи: добавление задачи в спринт
// @Description Проверяет задачу относительно окна дат спринта и добавляет её в список
// @Tags Tasks
// @Accept json
// @Produce json
// @Param sprintId path string true "ID спринта"
// @Param data body requestTask true "Данные задачи"
// @Success 200 {object} dao.Sprint "Спринт с добавленной задачей"
// @Failure 400 {object} apierrors.DefinedError "Некорректные данные задачи"
// @Failure 404 {object} apierrors.DefinedError "Спринт не найден"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints/{sprintId}/tasks [post]
func (s *Services) addTask(c echo.Context) error {
	sprint := c.(SprintContext).Sprint

	var req requestTask
	if err := c.Bind(&req); err != nil {
		return bindError(c, err, apierrors.ErrTaskBadRequest)
	}

	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrTaskInvalidStatus.WithDetails(map[string]string{
			"status": string(req.Status),
		}))
	}

	task := req.toTask()
	task.Id = dao.GenUUID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	if err := business.ValidateTask(&task, &sprint); err != nil {
		return EError(c, err)
	}

	sprint.TasksList = append(sprint.TasksList, task)

	if err := s.db.Save(&sprint).Error; err != nil {
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, sprint)
}

// updateTask godoc
// @id updateTask
// @Summary Задачи: обновление задачи
// @Description Частично обновляет поля задачи без повторной валидации дат
// @Tags Tasks
// @Accept json
// @Produce json
// @Param sprintId path string true "ID спринта"
// @Param taskId path string true "ID задачи"
// @Param data body requestTask true "Изменяемые поля задачи"
// @Success 200 {object} dao.Sprint "Спринт с обновленной задачей"
// @Failure 404 {object} apierrors.DefinedError "Спринт или задача не найдены"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints/{sprintId}/tasks/{taskId} [put]
func (s *Services) updateTask(c echo.Context) error {
	sprint := c.(SprintContext).Sprint

	taskId, err := uuid.FromString(c.Param("taskId"))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrTaskNotFound)
	}

	index := sprint.FindTask(taskId)
	if index == -1 {
		return EErrorDefined(c, apierrors.ErrTaskNotFound)
	}

	var req requestTask
	fields, err := BindData(c, &req)
	if err != nil {
		return bindError(c, err, apierrors.ErrTaskBadRequest)
	}

	task := &sprint.TasksList[index]
	for _, field := range fields {
		switch field {
		case "name":
			task.Name = req.Name
		case "description":
			task.Description = req.Description
		case "status":
			task.Status = req.Status
		case "startDate":
			task.StartDate = *req.StartDate
		case "endDate":
			task.EndDate = *req.EndDate
		case "assignedTo":
			task.AssignedTo = req.AssignedTo
		case "dateExtensionReason":
			task.DateExtensionReason = req.DateExtensionReason
		}
	}
	task.UpdatedAt = time.Now()

	if err := s.db.Save(&sprint).Error; err != nil {
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, sprint)
}

// deleteTask godoc
// @id deleteTask
// @Summary Задачи: удаление задачи
// @Description Удаляет задачу из списка. Неизвестный идентификатор не является ошибкой
// @Tags Tasks
// @Produce json
// @Param sprintId path string true "ID спринта"
// @Param taskId path string true "ID задачи"
// @Success 200 {object} dao.Sprint "Спринт без удаленной задачи"
// @Failure 404 {object} apierrors.DefinedError "Спринт не найден"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/sprints/{sprintId}/tasks/{taskId} [delete]
func (s *Services) deleteTask(c echo.Context) error {
	sprint := c.(SprintContext).Sprint

	// Отсутствующая задача просто ничего не отфильтрует
	taskId, _ := uuid.FromString(c.Param("taskId"))

	filtered := make(types.TaskList, 0, len(sprint.TasksList))
	for _, task := range sprint.TasksList {
		if task.Id != taskId {
			filtered = append(filtered, task)
		}
	}
	sprint.TasksList = filtered

	if err := s.db.Save(&sprint).Error; err != nil {
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, sprint)
}

func bindError(c echo.Context, err error, fallback apierrors.DefinedError) error {
	if isInvalidDateError(err) {
		return EErrorDefined(c, apierrors.ErrTaskInvalidDate)
	}
	if cfg != nil && cfg.Dev() {
		fallback = fallback.WithDebug(err.Error())
	}
	return EErrorDefined(c, fallback)
}

// echo оборачивает ошибки привязки в HTTPError, цепочка Unwrap ведет к
// исходной ошибке разбора даты.
func isInvalidDateError(err error) bool {
	if errors.Is(err, types.ErrInvalidDate) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), types.ErrInvalidDate.Error())
}
