package models

import (
	"time"
)

// Stop представляет временную приостановку компании-подрядчика.
// Интервал [StartDate, EndDate] включает обе границы; для открытых
// приостановок EndDate хранит дату-заглушку в 2099 году.
type Stop struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CompanyID uint      `gorm:"column:company_id;not null;index"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index"`
	Reason    string    `gorm:"column:reason;not null;size:255"`
	Visible   bool      `gorm:"column:visible;not null;default:false"` // Показывать ли причину подрядчику
	Worker    string    `gorm:"column:worker;not null;size:50"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Stop) TableName() string {
	return "stops"
}
