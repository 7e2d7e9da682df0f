package services

import (
	"errors"
	"fmt"
	"time"

	"adminProject/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateTermDTO представляет данные для создания недоступного периода
type CreateTermDTO struct {
	CompanyID uint   `json:"company_id" validate:"required"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// TermDTO представляет ответ с данными недоступного периода
type TermDTO struct {
	ID           uint           `json:"id"`
	CompanyID    uint           `json:"company_id"`
	CompanyName  string         `json:"company_name"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Worker       string         `json:"worker"`
	Status       IntervalStatus `json:"status"`
	DurationDays int            `json:"duration_days"`
	OpenEnded    bool           `json:"open_ended"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

// TermListDTO представляет список недоступных периодов со счетчиками
type TermListDTO struct {
	Items  []TermDTO    `json:"items"`
	Counts StatusCounts `json:"counts"`
}

// TermService предоставляет методы для работы с недоступными периодами.
// Статусы вычисляются тем же движком интервалов, что и для приостановок.
type TermService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewTermService создает новый экземпляр TermService
func NewTermService(db *gorm.DB) *TermService {
	return &TermService{
		db:        db,
		validator: validator.New(),
	}
}

// resolveTermDates разбирает даты из DTO по тем же правилам,
// что и для приостановок
func (s *TermService) resolveTermDates(startValue, endValue string, today time.Time) (time.Time, time.Time, error) {
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

// toTermDTO конвертирует модель ImpossibleTerm в DTO
func (s *TermService) toTermDTO(term models.ImpossibleTerm, today time.Time) TermDTO {
	companyName := term.Company.DisplayName()
	if term.Company.ID == 0 {
		companyName = fmt.Sprintf("company #%d", term.CompanyID)
	}

	return TermDTO{
		ID:           term.ID,
		CompanyID:    term.CompanyID,
		CompanyName:  companyName,
		StartDate:    term.StartDate.Format(dateLayout),
		EndDate:      term.EndDate.Format(dateLayout),
		Worker:       term.Worker,
		Status:       ClassifyInterval(term.StartDate, term.EndDate, today),
		DurationDays: DurationDays(term.StartDate, term.EndDate),
		OpenEnded:    IsOpenEnded(term.EndDate),
		CreatedAt:    term.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    term.UpdatedAt.Format(time.RFC3339),
	}
}

// Create создает новый недоступный период
func (s *TermService) Create(dto CreateTermDTO, worker string, today time.Time) (*TermDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Разбираем даты
	startDate, endDate, err := s.resolveTermDates(dto.StartDate, dto.EndDate, today)
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

	// Создаем период
	term := &models.ImpossibleTerm{
		CompanyID: dto.CompanyID,
		StartDate: startDate,
		EndDate:   endDate,
		Worker:    worker,
	}
	if err := s.db.Create(term).Error; err != nil {
		return nil, errors.New("ошибка при создании недоступного периода")
	}
	term.Company = company

	result := s.toTermDTO(*term, today)
	return &result, nil
}

// Update обновляет существующий недоступный период
func (s *TermService) Update(id uint, dto CreateTermDTO, worker string, today time.Time) (*TermDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Разбираем даты
	startDate, endDate, err := s.resolveTermDates(dto.StartDate, dto.EndDate, today)
	if err != nil {
		return nil, err
	}

	// Получаем период
	var term models.ImpossibleTerm
	if err := s.db.Preload("Company").First(&term, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, errors.New("ошибка при поиске недоступного периода")
	}

	// Обновляем поля
	term.CompanyID = dto.CompanyID
	term.StartDate = startDate
	term.EndDate = endDate
	term.Worker = worker

	if err := s.db.Save(&term).Error; err != nil {
		return nil, errors.New("ошибка при обновлении недоступного периода")
	}

	result := s.toTermDTO(term, today)
	return &result, nil
}

// Release досрочно завершает недоступный период
func (s *TermService) Release(id uint, today time.Time) (*TermDTO, error) {
	// Получаем период
	var term models.ImpossibleTerm
	if err := s.db.Preload("Company").First(&term, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, errors.New("ошибка при поиске недоступного периода")
	}

	// Переводим интервал в прошлое
	term.StartDate, term.EndDate = ReleaseDates(today)

	if err := s.db.Save(&term).Error; err != nil {
		return nil, errors.New("ошибка при завершении недоступного периода")
	}

	result := s.toTermDTO(term, today)
	return &result, nil
}

// Delete безвозвратно удаляет недоступный период
func (s *TermService) Delete(id uint) error {
	// Проверяем существование записи
	var term models.ImpossibleTerm
	if err := s.db.First(&term, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermNotFound
		}
		return errors.New("ошибка при поиске недоступного периода")
	}

	if err := s.db.Delete(&term).Error; err != nil {
		return errors.New("ошибка при удалении недоступного периода")
	}
	return nil
}

// List возвращает все недоступные периоды со статусами и счетчиками
func (s *TermService) List(today time.Time) (*TermListDTO, error) {
	var terms []models.ImpossibleTerm
	if err := s.db.Preload("Company").Order("start_date DESC").Find(&terms).Error; err != nil {
		return nil, errors.New("ошибка при получении списка недоступных периодов")
	}

	result := &TermListDTO{Items: []TermDTO{}}
	intervals := make([]DateInterval, 0, len(terms))
	for _, term := range terms {
		result.Items = append(result.Items, s.toTermDTO(term, today))
		intervals = append(intervals, DateInterval{StartDate: term.StartDate, EndDate: term.EndDate})
	}
	result.Counts = CountByStatus(intervals, today)

	return result, nil
}
