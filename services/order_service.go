package services

import (
	"errors"
	"time"

	"adminProject/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateOrderDTO представляет данные для создания заявки клиента
type CreateOrderDTO struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=50"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=5,max=30"`
	Region        string `json:"region" validate:"omitempty,max=50"`
	Content       string `json:"content" validate:"omitempty,max=1000"`
}

// UpdateOrderStatusDTO представляет данные для смены статуса заявки
type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=RECEIVED ASSIGNED CLOSED CANCELED"`
}

// OrderDTO представляет ответ с данными заявки
type OrderDTO struct {
	ID            uint   `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Region        string `json:"region"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	CompanyID     *uint  `json:"company_id,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	Worker        string `json:"worker"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// OrderService предоставляет методы для работы с заявками клиентов
type OrderService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewOrderService создает новый экземпляр OrderService
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		validator: validator.New(),
	}
}

// toOrderDTO конвертирует модель Order в DTO
func (s *OrderService) toOrderDTO(order models.Order) OrderDTO {
	dto := OrderDTO{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Region:        order.Region,
		Content:       order.Content,
		Status:        string(order.Status),
		CompanyID:     order.CompanyID,
		Worker:        order.Worker,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.Format(time.RFC3339),
	}
	if order.Company != nil {
		dto.CompanyName = order.Company.DisplayName()
	}
	return dto
}

// Create создает новую заявку
func (s *OrderService) Create(dto CreateOrderDTO, worker string) (*OrderDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	order := &models.Order{
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		Region:        dto.Region,
		Content:       dto.Content,
		Status:        models.OrderStatusReceived,
		Worker:        worker,
	}
	if err := s.db.Create(order).Error; err != nil {
		return nil, errors.New("ошибка при создании заявки")
	}

	result := s.toOrderDTO(*order)
	return &result, nil
}

// UpdateStatus меняет статус заявки
func (s *OrderService) UpdateStatus(id uint, dto UpdateOrderStatusDTO, worker string) (*OrderDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Получаем заявку
	var order models.Order
	if err := s.db.Preload("Company").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.New("ошибка при поиске заявки")
	}

	order.Status = models.OrderStatus(dto.Status)
	order.Worker = worker

	if err := s.db.Save(&order).Error; err != nil {
		return nil, errors.New("ошибка при обновлении заявки")
	}

	result := s.toOrderDTO(order)
	return &result, nil
}

// List возвращает заявки, опционально отфильтрованные по статусу
func (s *OrderService) List(status string) ([]OrderDTO, error) {
	var orders []models.Order
	query := s.db.Preload("Company").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, errors.New("ошибка при получении списка заявок")
	}

	result := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		result = append(result, s.toOrderDTO(order))
	}
	return result, nil
}

// AssignmentCandidate представляет компанию-кандидата на назначение
// вместе с данными, нужными для отбора
type AssignmentCandidate struct {
	Company    models.Company
	Stops      []DateInterval
	Terms      []DateInterval
	OpenOrders int
}

// hasActiveInterval сообщает, есть ли среди интервалов активный на дату today
func hasActiveInterval(intervals []DateInterval, today time.Time) bool {
	for _, interval := range intervals {
		if ClassifyInterval(interval.StartDate, interval.EndDate, today) == IntervalStatusActive {
			return true
		}
	}
	return false
}

// ChooseAssignee выбирает подрядчика по простому приоритету: действующая
// компания без активной приостановки и без недоступного периода на дату
// today, из оставшихся — с наименьшим числом открытых заявок.
// Возвращает nil, если подходящих кандидатов нет.
func ChooseAssignee(candidates []AssignmentCandidate, today time.Time) *models.Company {
	var chosen *models.Company
	bestOpenOrders := 0
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.Company.Condition != models.CompanyConditionActive {
			continue
		}
		if hasActiveInterval(candidate.Stops, today) || hasActiveInterval(candidate.Terms, today) {
			continue
		}
		if chosen == nil || candidate.OpenOrders < bestOpenOrders {
			chosen = &candidate.Company
			bestOpenOrders = candidate.OpenOrders
		}
	}
	return chosen
}

// AssignCompany подбирает подрядчика для заявки через ChooseAssignee
// по кандидатам региона заявки.
func (s *OrderService) AssignCompany(orderID uint, worker string, today time.Time) (*OrderDTO, error) {
	today = DateOnly(today)

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Получаем заявку
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.New("ошибка при поиске заявки")
	}

	if order.Status != models.OrderStatusReceived {
		tx.Rollback()
		return nil, errors.New("подрядчика можно назначить только для принятой заявки")
	}

	// Отбираем действующие компании региона
	var companies []models.Company
	query := tx.Where("condition = ?", models.CompanyConditionActive)
	if order.Region != "" {
		query = query.Where("region = ?", order.Region)
	}
	if err := query.Find(&companies).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при подборе компаний")
	}

	// Собираем по каждому кандидату интервалы недоступности
	// и число открытых заявок
	candidates := make([]AssignmentCandidate, 0, len(companies))
	for _, company := range companies {
		var stops []models.Stop
		if err := tx.Where("company_id = ?", company.ID).Find(&stops).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при проверке приостановок")
		}

		var terms []models.ImpossibleTerm
		if err := tx.Where("company_id = ?", company.ID).Find(&terms).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при проверке недоступных периодов")
		}

		var openOrders int64
		if err := tx.Model(&models.Order{}).
			Where("company_id = ? AND status = ?", company.ID, models.OrderStatusAssigned).
			Count(&openOrders).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при подсчете заявок компании")
		}

		candidate := AssignmentCandidate{Company: company, OpenOrders: int(openOrders)}
		for _, stop := range stops {
			candidate.Stops = append(candidate.Stops, DateInterval{StartDate: stop.StartDate, EndDate: stop.EndDate})
		}
		for _, term := range terms {
			candidate.Terms = append(candidate.Terms, DateInterval{StartDate: term.StartDate, EndDate: term.EndDate})
		}
		candidates = append(candidates, candidate)
	}

	chosen := ChooseAssignee(candidates, today)
	if chosen == nil {
		tx.Rollback()
		return nil, errors.New("нет доступных компаний для назначения")
	}

	// Назначаем подрядчика
	companyID := chosen.ID
	order.CompanyID = &companyID
	order.Status = models.OrderStatusAssigned
	order.Worker = worker

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при назначении подрядчика")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	order.Company = chosen
	result := s.toOrderDTO(order)
	return &result, nil
}
