package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Staff представляет сотрудника бэк-офиса
type Staff struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Nickname  string    `gorm:"column:nickname;unique;not null;size:50"`
	Email     string    `gorm:"column:email;unique;not null;size:100;index"`
	Password  string    `gorm:"column:password;not null;size:100"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Staff) TableName() string {
	return "staffs"
}

// BeforeCreate хук для валидации перед созданием
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if len(s.Nickname) < 2 || len(s.Nickname) > 50 {
		return errors.New("nickname must be between 2 and 50 characters")
	}
	if len(s.Email) < 3 || len(s.Email) > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	return nil
}
