package models

import (
	"gorm.io/gorm"
)

// OrderStatus представляет статус заявки клиента
type OrderStatus string

const (
	OrderStatusReceived OrderStatus = "RECEIVED" // Заявка принята
	OrderStatusAssigned OrderStatus = "ASSIGNED" // Назначен подрядчик
	OrderStatusClosed   OrderStatus = "CLOSED"   // Работы завершены
	OrderStatusCanceled OrderStatus = "CANCELED" // Заявка отменена
)

// Order представляет заявку клиента на подбор подрядчика
type Order struct {
	gorm.Model
	CustomerName  string      `gorm:"column:customer_name;not null;size:50"`
	CustomerPhone string      `gorm:"column:customer_phone;not null;size:30"`
	Region        string      `gorm:"column:region;size:50;index"`
	Content       string      `gorm:"column:content;size:1000"`
	Status        OrderStatus `gorm:"column:status;type:varchar(20);not null;default:'RECEIVED'"`
	CompanyID     *uint       `gorm:"column:company_id;index"` // Назначенный подрядчик
	Company       *Company    `gorm:"foreignKey:CompanyID;references:ID"`
	Worker        string      `gorm:"column:worker;not null;size:50"`
}

// TableName возвращает имя таблицы для модели Order
func (Order) TableName() string {
	return "orders"
}
