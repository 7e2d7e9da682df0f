package models

import (
	"time"
)

// FixFeePayType представляет способ оплаты абонентской платы
type FixFeePayType string

const (
	FixFeePayTypeTransfer FixFeePayType = "TRANSFER" // Банковский перевод
	FixFeePayTypeCard     FixFeePayType = "CARD"     // Оплата картой
	FixFeePayTypeCash     FixFeePayType = "CASH"     // Наличные
)

// FixFeeDate представляет маркер расчетного периода абонентской платы
type FixFeeDate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Label     string    `gorm:"column:label;unique;not null;size:50"` // Например "2025-09"
	DueDate   time.Time `gorm:"column:due_date;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (FixFeeDate) TableName() string {
	return "fix_fee_dates"
}

// FixFee представляет начисление абонентской платы компании за период.
// Пара (CompanyID, FeeDateID) уникальна. Статус оплаты не хранится,
// а вычисляется из PaidDate, срока периода и текущей даты.
type FixFee struct {
	ID        uint          `gorm:"primaryKey;autoIncrement"`
	CompanyID uint          `gorm:"column:company_id;not null;uniqueIndex:idx_fix_fees_company_period"`
	Company   Company       `gorm:"foreignKey:CompanyID;references:ID"`
	FeeDateID uint          `gorm:"column:fee_date_id;not null;uniqueIndex:idx_fix_fees_company_period"`
	FeeDate   FixFeeDate    `gorm:"foreignKey:FeeDateID;references:ID"`
	Amount    int64         `gorm:"column:amount;not null"`
	PayType   FixFeePayType `gorm:"column:pay_type;type:varchar(20);not null;default:'TRANSFER'"`
	PaidDate  *time.Time    `gorm:"column:paid_date;type:date"`
	Memo      string        `gorm:"column:memo;size:255"`
	Worker    string        `gorm:"column:worker;not null;size:50"`
	CreatedAt time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (FixFee) TableName() string {
	return "fix_fees"
}
