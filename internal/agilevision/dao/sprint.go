// DAO для работы со спринтами. Спринт хранится как единый агрегат: список
// задач и список назначенных исполнителей лежат в jsonb-колонках той же строки,
// поэтому запись агрегата атомарна на уровне строки.
package dao

import (
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Sprint struct {
	Id        uuid.UUID      `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `json:"name"`

	StartDate types.Date `json:"startDate" gorm:"index"`
	EndDate   types.Date `json:"endDate" gorm:"index"`

	Status types.SprintStatus `json:"status" gorm:"type:varchar(20);default:'Inactive'"`

	AssignedTo types.EmailList `json:"assignedTo" gorm:"type:jsonb"`

	Details             string `json:"details"`
	DateExtensionReason string `json:"dateExtensionReason"`
	DelayReason         string `json:"delayReason"`

	TasksList types.TaskList `json:"tasksList" gorm:"type:jsonb"`

	// Производные счетчики, пересчитываются при каждой записи агрегата
	Tasks     int `json:"tasks"`
	Completed int `json:"completed"`
}

func (Sprint) TableName() string { return "sprints" }

func (s Sprint) GetId() string {
	return s.Id.String()
}

func (s Sprint) GetString() string {
	return s.Name
}

// RecomputeCounts пересчитывает производные поля Tasks и Completed из списка
// задач. Идемпотентна, другие поля не трогает.
func (s *Sprint) RecomputeCounts() {
	s.Tasks = len(s.TasksList)
	completed := 0
	for _, task := range s.TasksList {
		if task.Status == types.TaskCompleted {
			completed++
		}
	}
	s.Completed = completed
}

// FindTask возвращает индекс задачи в списке или -1.
func (s *Sprint) FindTask(taskId uuid.UUID) int {
	for i := range s.TasksList {
		if s.TasksList[i].Id == taskId {
			return i
		}
	}
	return -1
}

func (s *Sprint) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Id == uuid.Nil {
		s.Id = GenUUID()
	}
	if s.Status == "" {
		s.Status = types.SprintInactive
	}
	return nil
}

// Счетчики не могут быть записаны в устаревшем виде независимо от того, какой
// путь мутации привел к сохранению.
func (s *Sprint) BeforeSave(tx *gorm.DB) (err error) {
	s.RecomputeCounts()
	return nil
}

// GetSprint загружает спринт по идентификатору.
func GetSprint(db *gorm.DB, id uuid.UUID) (*Sprint, error) {
	var sprint Sprint
	if err := db.Where("id = ?", id).First(&sprint).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}
