// Пакет для валидации данных, используемых в Agile Vision. Содержит валидаторы для ролей пользователей и статусов спринтов и задач. Использует библиотеку go-playground/validator для выполнения проверок.
//
// Основные возможности:
//   - Валидация ролей пользователей.
//   - Валидация статусов спринтов и задач.
package agilevision

import (
	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/go-playground/validator"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	err := v.RegisterValidation("role", roleValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("sprintStatus", sprintStatusValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("taskStatus", taskStatusValidator)
	if err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func roleValidator(fl validator.FieldLevel) bool {
	return types.Role(fl.Field().String()).Valid()
}

func sprintStatusValidator(fl validator.FieldLevel) bool {
	return types.SprintStatus(fl.Field().String()).Valid()
}

func taskStatusValidator(fl validator.FieldLevel) bool {
	return types.TaskStatus(fl.Field().String()).Valid()
}
