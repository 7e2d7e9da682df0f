package models

import (
	"fmt"
	"time"
)

// CompanyCondition представляет код состояния компании-подрядчика
type CompanyCondition int

const (
	CompanyConditionActive    CompanyCondition = 1 // Действующая компания
	CompanyConditionSuspended CompanyCondition = 2 // Приостановленная компания
	CompanyConditionWithdrawn CompanyCondition = 3 // Выбывшая компания
)

// Company представляет компанию-подрядчика
type Company struct {
	ID            uint             `gorm:"primaryKey;autoIncrement"`
	NamePrimary   string           `gorm:"column:name_primary;not null;size:100"`
	NameSecondary string           `gorm:"column:name_secondary;size:100"`
	Email         string           `gorm:"column:email;size:100"`
	Phone         string           `gorm:"column:phone;size:30"`
	Region        string           `gorm:"column:region;size:50;index"`
	Condition     CompanyCondition `gorm:"column:condition;not null;default:1"`
	CreatedAt     time.Time        `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string {
	return "companies"
}

// DisplayName возвращает отображаемое имя компании:
// сначала вторичное имя, затем основное, иначе заглушка по ID
func (c *Company) DisplayName() string {
	if c.NameSecondary != "" {
		return c.NameSecondary
	}
	if c.NamePrimary != "" {
		return c.NamePrimary
	}
	return fmt.Sprintf("company #%d", c.ID)
}
