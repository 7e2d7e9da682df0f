package models

import (
	"time"
)

// ImpossibleTerm представляет период, в который компания не принимает заказы
type ImpossibleTerm struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CompanyID uint      `gorm:"column:company_id;not null;index"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index"`
	Worker    string    `gorm:"column:worker;not null;size:50"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (ImpossibleTerm) TableName() string {
	return "impossible_terms"
}
