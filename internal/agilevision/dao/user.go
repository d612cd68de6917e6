// DAO (Data Access Object) для работы с данными пользователей.
//
// Основные возможности:
//   - Модель пользователя с уникальным email.
//   - Поиск пользователя по email.
//   - Создание пользователя по умолчанию при первом запуске.
package dao

import (
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/types"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Пользователи
type User struct {
	Id uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	Name     string     `json:"name"`
	Email    string     `json:"email" gorm:"uniqueIndex"`
	Password string     `json:"-"`
	Role     types.Role `json:"role" gorm:"type:varchar(20)"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u User) GetId() string {
	return u.Id.String()
}

func (u User) GetString() string {
	return u.Email
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.Id == uuid.Nil {
		u.Id = GenUUID()
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email или gorm.ErrRecordNotFound.
func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddDefaultUser создает учетную запись менеджера проекта со сгенерированным
// паролем. Возвращает пароль в открытом виде для единственной отправки на почту.
func AddDefaultUser(db *gorm.DB, email string) (string, error) {
	pass := GenPassword()
	user := User{
		Id:       GenUUID(),
		Name:     "admin",
		Email:    email,
		Password: GenPasswordHash(pass),
		Role:     types.RoleProjectManager,
	}

	if err := db.Create(&user).Error; err != nil {
		return "", err
	}
	return pass, nil
}
