package agilevision

import (
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/types"
)

type requestRegister struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     types.Role `json:"role" validate:"omitempty,role"`
}

type requestLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Поля-указатели и omitempty позволяют отличать отсутствующие поля от
// переданных при частичном обновлении.
type requestSprint struct {
	Name string `json:"name,omitempty"`

	StartDate *types.Date `json:"startDate,omitempty"`
	EndDate   *types.Date `json:"endDate,omitempty"`

	Status types.SprintStatus `json:"status,omitempty" validate:"omitempty,sprintStatus"`

	AssignedTo types.StringList `json:"assignedTo,omitempty"`

	Details             string `json:"details,omitempty"`
	DateExtensionReason string `json:"dateExtensionReason,omitempty"`
	DelayReason         string `json:"delayReason,omitempty"`

	TasksList []types.Task `json:"tasksList,omitempty"`
}

func (req *requestSprint) toDao() dao.Sprint {
	sprint := dao.Sprint{
		Name:                req.Name,
		Status:              req.Status,
		AssignedTo:          types.EmailList(req.AssignedTo),
		Details:             req.Details,
		DateExtensionReason: req.DateExtensionReason,
		DelayReason:         req.DelayReason,
		TasksList:           types.TaskList(req.TasksList),
	}
	if req.StartDate != nil {
		sprint.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		sprint.EndDate = *req.EndDate
	}
	return sprint
}

type requestTask struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Status      types.TaskStatus `json:"status,omitempty" validate:"omitempty,taskStatus"`

	StartDate *types.Date `json:"startDate,omitempty"`
	EndDate   *types.Date `json:"endDate,omitempty"`

	AssignedTo          types.StringList `json:"assignedTo,omitempty"`
	DateExtensionReason string           `json:"dateExtensionReason,omitempty"`
}

func (req *requestTask) toTask() types.Task {
	task := types.Task{
		Name:                req.Name,
		Description:         req.Description,
		Status:              req.Status,
		AssignedTo:          req.AssignedTo,
		DateExtensionReason: req.DateExtensionReason,
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = *req.EndDate
	}
	return task
}

type requestMessage struct {
	RecipientEmail string `json:"recipientEmail"`
	Message        string `json:"message"`
}
