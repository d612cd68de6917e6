// Регистрация и вход пользователей Agile Vision.
//
// Основные возможности:
//   - Регистрация пользователя с проверкой роли и уникальности email.
//   - Вход по email и паролю с единым ответом при любой ошибке учетных данных.
package agilevision

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// register godoc
// @id register
// @Summary Пользователи: регистрация пользователя
// @Description Создает нового пользователя с указанной ролью
// @Tags Users
// @Accept json
// @Produce json
// @Param data body requestRegister true "Данные для регистрации"
// @Success 201 {object} map[string]interface{} "Созданный пользователь"
// @Failure 400 {object} apierrors.DefinedError "Некорректные данные запроса"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (s *Services) register(c echo.Context) error {
	var req requestRegister
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// В details отмечаются именно отсутствующие поля
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return EErrorDefined(c, apierrors.ErrRegisterFieldsRequired.WithDetails(map[string]string{
			"name":     boolString(req.Name == ""),
			"email":    boolString(req.Email == ""),
			"password": boolString(req.Password == ""),
			"role":     boolString(req.Role == ""),
		}))
	}

	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRole)
	}

	if _, err := dao.GetUserByEmail(s.db, req.Email); err == nil {
		return EErrorDefined(c, apierrors.ErrUserAlreadyExist)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EError(c, err)
	}

	user := dao.User{
		Id:       dao.GenUUID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: dao.GenPasswordHash(req.Password),
		Role:     req.Role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return EErrorDefined(c, apierrors.ErrUserAlreadyExist)
		}
		return EError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// login godoc
// @id login
// @Summary Пользователи: вход пользователя
// @Description Аутентифицирует пользователя по email и паролю
// @Tags Users
// @Accept json
// @Produce json
// @Param data body requestLogin true "Данные для входа"
// @Success 200 {object} map[string]interface{} "Информация о пользователе"
// @Failure 400 {object} apierrors.DefinedError "Отсутствуют обязательные поля"
// @Failure 401 {object} apierrors.DefinedError "Неудачный вход в систему"
// @Failure 500 {object} apierrors.DefinedError "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (s *Services) login(c echo.Context) error {
	var req requestLogin
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		return EErrorDefined(c, apierrors.ErrLoginFieldsRequired)
	}

	user, err := dao.GetUserByEmail(s.db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrFailedLogin)
		}
		return EError(c, err)
	}

	if !dao.CheckPassword(req.Password, user.Password) {
		return EErrorDefined(c, apierrors.ErrFailedLogin)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
