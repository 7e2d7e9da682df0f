package models

import (
	"errors"

	"gorm.io/gorm"
)

// Evaluation представляет оценку удовлетворенности клиента по заявке
type Evaluation struct {
	gorm.Model
	OrderID       uint    `gorm:"column:order_id;not null;index"`
	Order         Order   `gorm:"foreignKey:OrderID;references:ID"`
	CompanyID     uint    `gorm:"column:company_id;not null;index"`
	Company       Company `gorm:"foreignKey:CompanyID;references:ID"`
	ScoreKindness int     `gorm:"column:score_kindness;not null"` // 1..5
	ScoreQuality  int     `gorm:"column:score_quality;not null"`  // 1..5
	ScoreSchedule int     `gorm:"column:score_schedule;not null"` // 1..5
	Comment       string  `gorm:"column:comment;size:1000"`
}

// TableName возвращает имя таблицы для модели Evaluation
func (Evaluation) TableName() string {
	return "evaluations"
}

// BeforeCreate хук для валидации оценок перед созданием
func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	for _, score := range []int{e.ScoreKindness, e.ScoreQuality, e.ScoreSchedule} {
		if score < 1 || score > 5 {
			return errors.New("score must be between 1 and 5")
		}
	}
	return nil
}
