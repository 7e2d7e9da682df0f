package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"adminProject/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateStopDTO представляет данные для создания приостановки
type CreateStopDTO struct {
	CompanyID uint   `json:"company_id" validate:"required"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,min=2,max=255"`
	Visible   bool   `json:"visible"`
}

// StopDTO представляет ответ с данными приостановки
type StopDTO struct {
	ID           uint           `json:"id"`
	CompanyID    uint           `json:"company_id"`
	CompanyName  string         `json:"company_name"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Reason       string         `json:"reason"`
	Visible      bool           `json:"visible"`
	Worker       string         `json:"worker"`
	Status       IntervalStatus `json:"status"`
	DurationDays int            `json:"duration_days"`
	OpenEnded    bool           `json:"open_ended"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

// StopListDTO представляет список приостановок со счетчиками по статусам
type StopListDTO struct {
	Items  []StopDTO    `json:"items"`
	Counts StatusCounts `json:"counts"`
}

// StopService предоставляет методы для работы с приостановками
type StopService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
}

// NewStopService создает новый экземпляр StopService
func NewStopService(db *gorm.DB, email *EmailService) *StopService {
	return &StopService{
		db:        db,
		validator: validator.New(),
		email:     email,
	}
}

// resolveStopDates разбирает даты из DTO: пустая дата начала — сегодня,
// пустая дата окончания — заглушка открытого интервала
func (s *StopService) resolveStopDates(startValue, endValue string, today time.Time) (time.Time, time.Time, error) {
	start, err := parseOptionalDate(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseOptionalDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startDate := DateOnly(today)
	if start != nil {
		startDate = *start
	}
	endDate := ResolveOpenEndDate(end, today)

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.New("дата окончания не может быть раньше даты начала")
	}
	return startDate, endDate, nil
}

// toStopDTO конвертирует модель Stop в DTO
func (s *StopService) toStopDTO(stop models.Stop, today time.Time) StopDTO {
	// Висячая ссылка на компанию не считается ошибкой:
	// вместо имени показываем заглушку по ID
	companyName := stop.Company.DisplayName()
	if stop.Company.ID == 0 {
		companyName = fmt.Sprintf("company #%d", stop.CompanyID)
	}

	return StopDTO{
		ID:           stop.ID,
		CompanyID:    stop.CompanyID,
		CompanyName:  companyName,
		StartDate:    stop.StartDate.Format(dateLayout),
		EndDate:      stop.EndDate.Format(dateLayout),
		Reason:       stop.Reason,
		Visible:      stop.Visible,
		Worker:       stop.Worker,
		Status:       ClassifyInterval(stop.StartDate, stop.EndDate, today),
		DurationDays: DurationDays(stop.StartDate, stop.EndDate),
		OpenEnded:    IsOpenEnded(stop.EndDate),
		CreatedAt:    stop.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    stop.UpdatedAt.Format(time.RFC3339),
	}
}

// Create создает новую приостановку.
// Имя сотрудника передается явно из данных авторизации.
func (s *StopService) Create(dto CreateStopDTO, worker string, today time.Time) (*StopDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Разбираем даты
	startDate, endDate, err := s.resolveStopDates(dto.StartDate, dto.EndDate, today)
	if err != nil {
		return nil, err
	}

	// Проверяем существование компании
	var company models.Company
	if err := s.db.First(&company, dto.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, errors.New("ошибка при поиске компании")
	}

	// Создаем приостановку
	stop := &models.Stop{
		CompanyID: dto.CompanyID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    dto.Reason,
		Visible:   dto.Visible,
		Worker:    worker,
	}
	if err := s.db.Create(stop).Error; err != nil {
		return nil, errors.New("ошибка при создании приостановки")
	}
	stop.Company = company

	// Уведомляем подрядчика, если причина видима и указан email.
	// Ошибка отправки не отменяет создание записи.
	if stop.Visible && company.Email != "" && s.email != nil {
		if err := s.email.SendSuspensionNotice(company.Email, company.DisplayName(), startDate, endDate, dto.Reason); err != nil {
			log.Printf("Ошибка отправки уведомления о приостановке: %v", err)
		}
	}

	result := s.toStopDTO(*stop, today)
	return &result, nil
}

// Update обновляет существующую приостановку
func (s *StopService) Update(id uint, dto CreateStopDTO, worker string, today time.Time) (*StopDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Разбираем даты
	startDate, endDate, err := s.resolveStopDates(dto.StartDate, dto.EndDate, today)
	if err != nil {
		return nil, err
	}

	// Получаем приостановку
	var stop models.Stop
	if err := s.db.Preload("Company").First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		return nil, errors.New("ошибка при поиске приостановки")
	}

	// Обновляем поля
	stop.CompanyID = dto.CompanyID
	stop.StartDate = startDate
	stop.EndDate = endDate
	stop.Reason = dto.Reason
	stop.Visible = dto.Visible
	stop.Worker = worker

	if err := s.db.Save(&stop).Error; err != nil {
		return nil, errors.New("ошибка при обновлении приостановки")
	}

	result := s.toStopDTO(stop, today)
	return &result, nil
}

// Release досрочно завершает приостановку: обе даты безусловно
// переводятся на вчера, даже если интервал уже завершен
func (s *StopService) Release(id uint, today time.Time) (*StopDTO, error) {
	// Получаем приостановку
	var stop models.Stop
	if err := s.db.Preload("Company").First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		return nil, errors.New("ошибка при поиске приостановки")
	}

	// Переводим интервал в прошлое
	stop.StartDate, stop.EndDate = ReleaseDates(today)

	if err := s.db.Save(&stop).Error; err != nil {
		return nil, errors.New("ошибка при завершении приостановки")
	}

	result := s.toStopDTO(stop, today)
	return &result, nil
}

// Delete безвозвратно удаляет приостановку
func (s *StopService) Delete(id uint) error {
	// Проверяем существование записи
	var stop models.Stop
	if err := s.db.First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStopNotFound
		}
		return errors.New("ошибка при поиске приостановки")
	}

	if err := s.db.Delete(&stop).Error; err != nil {
		return errors.New("ошибка при удалении приостановки")
	}
	return nil
}

// List возвращает все приостановки со статусами и счетчиками на дату today
func (s *StopService) List(today time.Time) (*StopListDTO, error) {
	var stops []models.Stop
	if err := s.db.Preload("Company").Order("start_date DESC").Find(&stops).Error; err != nil {
		return nil, errors.New("ошибка при получении списка приостановок")
	}

	result := &StopListDTO{Items: []StopDTO{}}
	intervals := make([]DateInterval, 0, len(stops))
	for _, stop := range stops {
		result.Items = append(result.Items, s.toStopDTO(stop, today))
		intervals = append(intervals, DateInterval{StartDate: stop.StartDate, EndDate: stop.EndDate})
	}
	result.Counts = CountByStatus(intervals, today)

	return result, nil
}
