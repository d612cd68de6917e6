// Содержит определения типов данных, используемых в приложении Agile Vision.
// Включает типы для работы с датами (только дата, без времени), статусами спринтов
// и задач, ролями пользователей и встроенными списками (jsonb).
//
// Основные возможности:
//   - Сериализация и десериализация дат в формате "2006-01-02".
//   - Валидация статусов спринтов и задач.
//   - Хранение списка задач и списка исполнителей как jsonb-колонок GORM.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

var ErrInvalidDate = errors.New("invalid date format")

// Date type. Дата без времени, внешний формат "2006-01-02".
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == "null" || str == `""` {
		*d = Date{}
		return nil
	}
	if str != "" && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	if strings.Contains(str, "T") {
		str = strings.Split(str, "T")[0]
	}
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, str)
	}
	*d = Date{t}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(d.Time.Format("\"2006-01-02\"")), nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = Date{v}
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("unsupported date value: %v", value)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

func (Date) GormDataType() string { return "timestamptz" }

func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// Role type. Роль пользователя в системе.
type Role string

const (
	RoleDeveloper      Role = "Developer"
	RoleProjectManager Role = "Project Manager"
)

func (r Role) Valid() bool {
	return r == RoleDeveloper || r == RoleProjectManager
}

// SprintStatus type
type SprintStatus string

const (
	SprintActive    SprintStatus = "Active"
	SprintInactive  SprintStatus = "Inactive"
	SprintCompleted SprintStatus = "Completed"
	SprintDelayed   SprintStatus = "Delayed"
)

func (s SprintStatus) Valid() bool {
	switch s {
	case SprintActive, SprintInactive, SprintCompleted, SprintDelayed:
		return true
	}
	return false
}

// TaskStatus type
type TaskStatus string

const (
	TaskPlanned    TaskStatus = "Planned"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPlanned, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Задача спринта. Хранится только внутри своего спринта, отдельной таблицы нет.
type Task struct {
	Id uuid.UUID `json:"id"`

	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`

	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`

	AssignedTo          []string `json:"assignedTo"`
	DateExtensionReason string   `json:"dateExtensionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskList type. Список задач спринта, jsonb-колонка.
type TaskList []Task

func (tl TaskList) Value() (driver.Value, error) {
	if tl == nil {
		tl = TaskList{}
	}
	return json.Marshal(tl)
}

func (tl *TaskList) Scan(value interface{}) error {
	if value == nil {
		*tl = TaskList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	return json.Unmarshal(bytes, tl)
}

func (TaskList) GormDataType() string { return "jsonb" }

// EmailList type. Список email-адресов, jsonb-колонка.
type EmailList []string

func (el EmailList) Value() (driver.Value, error) {
	if el == nil {
		el = EmailList{}
	}
	return json.Marshal(el)
}

func (el *EmailList) Scan(value interface{}) error {
	if value == nil {
		*el = EmailList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	return json.Unmarshal(bytes, el)
}

func (EmailList) GormDataType() string { return "jsonb" }

// StringList type. Принимает в JSON как одну строку, так и массив строк.
type StringList []string

func (sl *StringList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var single string
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}
		*sl = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*sl = StringList(many)
	return nil
}
