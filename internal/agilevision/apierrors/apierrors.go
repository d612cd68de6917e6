// Пакет содержит определения ошибок, используемых в приложении Agile Vision.
// Каждая ошибка имеет код, HTTP-статус и описание, что позволяет удобно
// обрабатывать исключения и предоставлять информативные сообщения пользователю.
//
// Основные возможности:
//   - Определение ошибок авторизации, спринтов, задач и почтовых уведомлений.
//   - Предоставление кодов ошибок, соответствующих кодам HTTP статусов.
//   - Подробности валидации по отдельным полям через WithDetails.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int               `json:"code"`
	StatusCode int               `json:"-"`
	Err        string            `json:"message"`
	RuErr      string            `json:"ru_message,omitempty"`
	Details    map[string]string `json:"details,omitempty"`

	// Debug заполняется только в development-режиме
	Debug string `json:"debug,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - auth errors
	ErrRegisterFieldsRequired = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "all fields are required", RuErr: "Все поля обязательны для заполнения"}
	ErrInvalidRole            = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: `invalid role, must be either "Developer" or "Project Manager"`, RuErr: "Указана некорректная роль пользователя"}
	ErrUserAlreadyExist       = DefinedError{Code: 1003, StatusCode: http.StatusBadRequest, Err: "email already registered", RuErr: "Пользователь с указанным email уже зарегистрирован"}
	ErrLoginFieldsRequired    = DefinedError{Code: 1004, StatusCode: http.StatusBadRequest, Err: "email and password are required", RuErr: "Поля email и пароль не могут быть пустыми"}
	ErrFailedLogin            = DefinedError{Code: 1005, StatusCode: http.StatusUnauthorized, Err: "invalid credentials", RuErr: "Неправильный email или пароль"}

	// 2*** - sprint errors
	ErrSprintNotFound         = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "sprint not found", RuErr: "Спринт не найден"}
	ErrSprintFieldsRequired   = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "missing required fields", RuErr: "Отсутствуют обязательные поля спринта"}
	ErrSprintInvalidDateRange = DefinedError{Code: 2003, StatusCode: http.StatusBadRequest, Err: "end date must be after start date", RuErr: "Дата окончания должна быть позже даты начала"}
	ErrSprintInvalidStatus    = DefinedError{Code: 2004, StatusCode: http.StatusBadRequest, Err: "invalid sprint status, must be one of: Active, Inactive, Completed, Delayed", RuErr: "Некорректный статус спринта"}
	ErrSprintBadRequest       = DefinedError{Code: 2005, StatusCode: http.StatusBadRequest, Err: "invalid sprint payload", RuErr: "Некорректное тело запроса"}

	// 3*** - task errors
	ErrTaskNotFound       = DefinedError{Code: 3001, StatusCode: http.StatusNotFound, Err: "task not found", RuErr: "Задача не найдена"}
	ErrTaskMissingFields  = DefinedError{Code: 3002, StatusCode: http.StatusBadRequest, Err: "missing required fields", RuErr: "Отсутствуют обязательные поля задачи"}
	ErrTaskNoAssignee     = DefinedError{Code: 3003, StatusCode: http.StatusBadRequest, Err: "at least one developer must be assigned to the task", RuErr: "К задаче должен быть назначен хотя бы один разработчик"}
	ErrTaskInvalidDate    = DefinedError{Code: 3004, StatusCode: http.StatusBadRequest, Err: "invalid date format", RuErr: "Некорректный формат даты"}
	ErrTaskInvalidStatus  = DefinedError{Code: 3005, StatusCode: http.StatusBadRequest, Err: "invalid task status, must be one of: Planned, In Progress, Completed", RuErr: "Некорректный статус задачи"}
	ErrTaskDateOrder      = DefinedError{Code: 3006, StatusCode: http.StatusBadRequest, Err: "task end date cannot be before start date", RuErr: "Дата окончания задачи не может быть раньше даты начала"}
	ErrTaskOutsideSprint  = DefinedError{Code: 3007, StatusCode: http.StatusBadRequest, Err: "task dates must be within the sprint date range", RuErr: "Даты задачи должны находиться в пределах дат спринта"}
	ErrTaskBadRequest     = DefinedError{Code: 3008, StatusCode: http.StatusBadRequest, Err: "invalid task payload", RuErr: "Некорректное тело запроса задачи"}

	// 4*** - message errors
	ErrMessageFieldsRequired = DefinedError{Code: 4001, StatusCode: http.StatusBadRequest, Err: "recipient email and message are required", RuErr: "Поля адресат и сообщение обязательны"}
	ErrInvalidEmail          = DefinedError{Code: 4002, StatusCode: http.StatusBadRequest, Err: "invalid email format", RuErr: "Некорректный формат email"}
	ErrEmailAuth             = DefinedError{Code: 4003, StatusCode: http.StatusInternalServerError, Err: "email service configuration error, please contact support", RuErr: "Ошибка конфигурации почтового сервиса"}
	ErrEmailUnavailable      = DefinedError{Code: 4004, StatusCode: http.StatusServiceUnavailable, Err: "email service temporarily unavailable, please try again later", RuErr: "Почтовый сервис временно недоступен, повторите попытку позже"}
	ErrEmailSendFailed       = DefinedError{Code: 4005, StatusCode: http.StatusInternalServerError, Err: "failed to send message", RuErr: "Не удалось отправить сообщение"}

	// 5*** - generic
	ErrGeneric       = DefinedError{Code: 5001, StatusCode: http.StatusInternalServerError, Err: "internal server error", RuErr: "Внутренняя ошибка сервера"}
	ErrEntityToLarge = DefinedError{Code: 5002, StatusCode: http.StatusRequestEntityTooLarge, Err: "request entity too large", RuErr: "Превышен допустимый размер запроса"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.Replace(e.Err, "%s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, "%s", "", -1)
	}
	return e
}

func (e DefinedError) WithDetails(details map[string]string) DefinedError {
	e.Details = details
	return e
}

func (e DefinedError) WithDebug(debug string) DefinedError {
	e.Debug = debug
	return e
}
