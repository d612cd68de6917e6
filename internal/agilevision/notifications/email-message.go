package notifications

import (
	"log/slog"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/dao"
)

type directMessageContext struct {
	Message string
	SentAt  string
}

// SendDirectMessage отправляет личное сообщение на указанный адрес синхронно.
// Ошибка транспорта возвращается вызывающему без изменений для последующей
// классификации.
func (es *EmailService) SendDirectMessage(to string, message string) error {
	content, textContent, err := es.render("message", directMessageContext{
		Message: message,
		SentAt:  time.Now().Format("02.01.2006 15:04"),
	})
	if err != nil {
		return err
	}

	return es.SendNow(mail{
		To:          to,
		Subject:     "New Message from Sprint Chat",
		Content:     content,
		TextContent: textContent,
	})
}

type newUserPasswordContext struct {
	Email    string
	Password string
	WebURL   string
}

// NewUserPasswordNotify отправляет пользователю по умолчанию письмо со
// сгенерированным паролем. Отправка идет через очередь воркеров.
func (es *EmailService) NewUserPasswordNotify(user dao.User, pass string) error {
	context := newUserPasswordContext{
		Email:    user.Email,
		Password: pass,
	}
	if es.cfg.WebURL != nil {
		context.WebURL = es.cfg.WebURL.String()
	}

	content, textContent, err := es.render("new_user_password", context)
	if err != nil {
		return err
	}

	slog.Info("Send generated password to default user", "email", user.Email)

	return es.Enqueue(mail{
		To:          user.Email,
		Subject:     "Agile Vision account created",
		Content:     content,
		TextContent: textContent,
	})
}
