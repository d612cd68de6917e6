package notifications

import (
	"strings"
	"testing"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/config"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisabledService(t *testing.T) *EmailService {
	t.Helper()
	es := NewEmailService(&config.Config{
		EmailDisabled: true,
		EmailWorkers:  1,
	})
	t.Cleanup(es.Stop)
	return es
}

func TestLoadTemplates(t *testing.T) {
	es := newDisabledService(t)

	for _, name := range []string{"sprint_assignment", "message", "new_user_password"} {
		_, ok := es.templates[name]
		assert.True(t, ok, "template %s not loaded", name)
	}
}

func TestRenderDirectMessage(t *testing.T) {
	es := newDisabledService(t)

	content, textContent, err := es.render("message", directMessageContext{
		Message: "Deploy is scheduled for Friday",
		SentAt:  time.Now().Format("02.01.2006 15:04"),
	})
	require.NoError(t, err)

	assert.Contains(t, content, "Deploy is scheduled for Friday")
	assert.Contains(t, content, "Agile Vision")
	// Текстовая альтернатива без HTML-разметки
	assert.Contains(t, textContent, "Deploy is scheduled for Friday")
	assert.NotContains(t, textContent, "<")
}

func TestRenderUnknownTemplate(t *testing.T) {
	es := newDisabledService(t)

	_, _, err := es.render("nope", nil)
	assert.Error(t, err)
}

func TestSendDirectMessageDisabled(t *testing.T) {
	es := newDisabledService(t)

	// При выключенной почте отправка не является ошибкой
	assert.NoError(t, es.SendDirectMessage("dev@example.com", "hello"))
}

func TestSprintAssignmentDisabled(t *testing.T) {
	es := newDisabledService(t)

	end, _ := time.Parse("2006-01-02", "2030-01-15")
	sprint := dao.Sprint{
		Id:        dao.GenUUID(),
		Name:      "Release hardening",
		StartDate: types.Date{Time: end.AddDate(0, 0, -14)},
		EndDate:   types.Date{Time: end},
		Details:   "Stabilize the release branch",
	}

	// Вызов должен вернуться после завершения всех отправок
	es.SprintAssignment([]string{"a@example.com", "b@example.com"}, &sprint)
	es.SprintAssignment(nil, &sprint)
}

func TestStopDisablesSending(t *testing.T) {
	es := NewEmailService(&config.Config{
		EmailDisabled: true,
		EmailWorkers:  2,
	})

	// Stop конкурирует с отправителями за флаг disabled
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = es.SendNow(mail{To: "dev@example.com", Subject: "ping"})
		}
	}()
	es.Stop()
	<-done

	assert.NoError(t, es.SendNow(mail{To: "dev@example.com", Subject: "ping"}))
	assert.Error(t, es.Enqueue(mail{To: "dev@example.com", Subject: "ping"}))
}

func TestRenderSprintAssignment(t *testing.T) {
	es := newDisabledService(t)

	content, _, err := es.render("sprint_assignment", sprintAssignmentContext{
		SprintName:    "Release hardening",
		StartDate:     "2030-01-01",
		EndDate:       "2030-01-15",
		RemainingDays: 14,
		Details:       "Stabilize the release branch",
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(content, "Release hardening"))
	assert.True(t, strings.Contains(content, "2030-01-15"))
}
