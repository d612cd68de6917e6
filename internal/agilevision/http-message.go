// Отправка личных сообщений на почту. Сообщение отправляется синхронно,
// транспортные ошибки классифицируются и отображаются в ответ с подходящим
// HTTP-статусом.
package agilevision

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/agile-vision/agilevision/internal/agilevision/notifications"
	"github.com/labstack/echo/v4"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sendMessage godoc
// @id sendMessage
// @Summary Сообщения: отправка сообщения на почту
// @Description Отправляет личное сообщение на указанный email
// @Tags Messages
// @Accept json
// @Produce json
// @Param data body requestMessage true "Адресат и текст сообщения"
// @Success 200 {object} map[string]interface{} "Результат отправки"
// @Failure 400 {object} apierrors.DefinedError "Некорректные данные запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка почтового сервиса"
// @Failure 503 {object} apierrors.DefinedError "Почтовый сервис недоступен"
// @Router /api/messages/send [post]
func (s *Services) sendMessage(c echo.Context) error {
	var req requestMessage
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}

	req.RecipientEmail = strings.TrimSpace(req.RecipientEmail)
	req.Message = strings.TrimSpace(req.Message)

	if req.RecipientEmail == "" || req.Message == "" {
		return EErrorDefined(c, apierrors.ErrMessageFieldsRequired)
	}

	if !emailRegex.MatchString(req.RecipientEmail) {
		return EErrorDefined(c, apierrors.ErrInvalidEmail)
	}

	if err := s.emailService.SendDirectMessage(req.RecipientEmail, req.Message); err != nil {
		return EErrorDefined(c, notifications.ClassifySendError(err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}
