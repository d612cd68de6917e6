// Пакет предоставляет функциональность для отправки почтовых уведомлений:
// личные сообщения, уведомления о назначении на спринт и письмо с паролем для
// пользователя по умолчанию. Содержимое писем собирается из встроенных
// HTML-шаблонов, текстовая альтернатива получается из HTML.
//
// Основные возможности:
//   - Отправка писем по SMTP через gomail.
//   - Пул воркеров для фоновых отправок и синхронная отправка для запросов,
//     которые должны дождаться результата.
//   - Классификация транспортных ошибок (авторизация / сеть / прочее).
package notifications

import (
	"bytes"
	"embed"
	"fmt"
	htmlTemplate "html/template"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/agile-vision/agilevision/internal/agilevision/config"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"golang.org/x/sync/errgroup"
	"gopkg.in/gomail.v2"
)

var htmlStripPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var minifier *minify.M = minify.New()

//go:embed templates/*
var defaultTemplates embed.FS

// Mailer - абстракция почтовой службы для обработчиков HTTP. Позволяет
// подменять транспорт в тестах.
type Mailer interface {
	SendDirectMessage(to string, message string) error
	SprintAssignment(recipients []string, sprint *dao.Sprint)
}

type EmailService struct {
	d   *gomail.Dialer
	cfg *config.Config

	// disabled читают воркеры и обработчики запросов, пишет Stop
	disabled atomic.Bool

	templates map[string]*htmlTemplate.Template

	emailChan chan mail
	eg        errgroup.Group
}

type mail struct {
	To          string
	Subject     string
	Content     string
	TextContent string
}

func NewEmailService(cfg *config.Config) *EmailService {
	minifier.AddFunc("text/html", html.Minify)

	es := &EmailService{
		d:         gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword),
		cfg:       cfg,
		templates: map[string]*htmlTemplate.Template{},
		emailChan: make(chan mail),
	}
	es.disabled.Store(cfg.EmailDisabled)

	if cfg.EmailDisabled {
		slog.Warn("Email notifications disabled")
	}

	es.loadTemplates()

	for i := 0; i < cfg.EmailWorkers; i++ {
		es.eg.Go(func() error {
			return es.worker(es.emailChan)
		})
	}

	return es
}

func (es *EmailService) loadTemplates() {
	dir, err := defaultTemplates.ReadDir("templates")
	if err != nil {
		slog.Error("Read embed templates dir", "err", err)
		return
	}

	for _, file := range dir {
		name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))

		data, err := defaultTemplates.ReadFile(filepath.Join("templates", file.Name()))
		if err != nil {
			slog.Warn("Read embed template", slog.String("name", file.Name()), "err", err)
			continue
		}

		data, err = minifier.Bytes("text/html", data)
		if err != nil {
			slog.Warn("Error minify embed template", slog.String("name", file.Name()), "err", err)
		}

		tmpl, err := htmlTemplate.New(name).Parse(string(data))
		if err != nil {
			slog.Warn("Error parse embed template", slog.String("name", file.Name()), "err", err)
			continue
		}
		es.templates[name] = tmpl
	}
}

func (es *EmailService) render(name string, data interface{}) (content string, textContent string, err error) {
	tmpl, ok := es.templates[name]
	if !ok {
		return "", "", fmt.Errorf("email template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return buf.String(), htmlStripPolicy.Sanitize(buf.String()), nil
}

// Stop закрывает канал отправки и дожидается завершения воркеров.
func (es *EmailService) Stop() {
	slog.Info("Closing email workers")
	es.disabled.Store(true)
	close(es.emailChan)

	if err := es.eg.Wait(); err != nil {
		slog.Error("Email worker error", "err", err)
	}

	slog.Info("Email workers successfully stopped")
}

func (es *EmailService) sendEmail(e mail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", es.cfg.EmailFrom)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/plain", e.TextContent)
	m.AddAlternative("text/html", e.Content)

	return es.d.DialAndSend(m)
}

// SendNow отправляет письмо синхронно. Используется там, где HTTP-ответ должен
// дождаться результата отправки.
func (es *EmailService) SendNow(e mail) error {
	if es.disabled.Load() {
		slog.Warn("Email disabled, drop message", "to", e.To, "subject", e.Subject)
		return nil
	}
	return es.sendEmail(e)
}

// Enqueue ставит письмо в очередь воркеров. Ошибки отправки только логируются.
func (es *EmailService) Enqueue(e mail) error {
	if es.disabled.Load() {
		return fmt.Errorf("email service stopped")
	}
	es.emailChan <- e
	return nil
}

func (es *EmailService) worker(emailChan <-chan mail) error {
	for e := range emailChan {
		if err := es.sendEmail(e); err != nil {
			slog.Error("Email send failed", "to", e.To, "err", err)
		}
	}
	return nil
}
