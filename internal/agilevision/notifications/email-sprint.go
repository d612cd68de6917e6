package notifications

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"golang.org/x/sync/errgroup"
)

type sprintAssignmentContext struct {
	SprintName    string
	StartDate     string
	EndDate       string
	RemainingDays int
	Details       string
	WebURL        string
}

// SprintAssignment рассылает уведомления о назначении на спринт всем указанным
// адресам. Отправки идут параллельно, вызов возвращается после завершения всех
// попыток; ошибки отдельных получателей только логируются и не влияют на
// результат вызвавшей операции.
func (es *EmailService) SprintAssignment(recipients []string, sprint *dao.Sprint) {
	if len(recipients) == 0 {
		return
	}

	remaining := int(math.Ceil(time.Until(sprint.EndDate.Time).Hours() / 24))

	context := sprintAssignmentContext{
		SprintName:    sprint.Name,
		StartDate:     sprint.StartDate.String(),
		EndDate:       sprint.EndDate.String(),
		RemainingDays: remaining,
		Details:       sprint.Details,
	}
	if es.cfg.WebURL != nil {
		context.WebURL = es.cfg.WebURL.String()
	}

	content, textContent, err := es.render("sprint_assignment", context)
	if err != nil {
		slog.Error("Render sprint assignment email", "sprint", sprint.GetId(), "err", err)
		return
	}

	subject := fmt.Sprintf("Sprint Assign: %s", sprint.Name)

	var wg errgroup.Group
	for _, recipient := range recipients {
		wg.Go(func() error {
			if err := es.SendNow(mail{
				To:          recipient,
				Subject:     subject,
				Content:     content,
				TextContent: textContent,
			}); err != nil {
				slog.Error("Send sprint assignment email", "to", recipient, "sprint", sprint.GetId(), "err", err)
			}
			return nil
		})
	}
	wg.Wait()
}
