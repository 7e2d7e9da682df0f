package services

import (
	"errors"
	"time"

	"adminProject/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateEvaluationDTO представляет данные для создания оценки
type CreateEvaluationDTO struct {
	OrderID       uint   `json:"order_id" validate:"required"`
	ScoreKindness int    `json:"score_kindness" validate:"required,min=1,max=5"`
	ScoreQuality  int    `json:"score_quality" validate:"required,min=1,max=5"`
	ScoreSchedule int    `json:"score_schedule" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"omitempty,max=1000"`
}

// EvaluationDTO представляет ответ с данными оценки
type EvaluationDTO struct {
	ID            uint   `json:"id"`
	OrderID       uint   `json:"order_id"`
	CompanyID     uint   `json:"company_id"`
	CompanyName   string `json:"company_name"`
	ScoreKindness int    `json:"score_kindness"`
	ScoreQuality  int    `json:"score_quality"`
	ScoreSchedule int    `json:"score_schedule"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"createdAt"`
}

// CompanyScoreDTO представляет средние оценки компании
type CompanyScoreDTO struct {
	CompanyID       uint    `json:"company_id"`
	EvaluationCount int64   `json:"evaluation_count"`
	AvgKindness     float64 `json:"avg_kindness"`
	AvgQuality      float64 `json:"avg_quality"`
	AvgSchedule     float64 `json:"avg_schedule"`
}

// EvaluationService предоставляет методы для работы с оценками клиентов
type EvaluationService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewEvaluationService создает новый экземпляр EvaluationService
func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{
		db:        db,
		validator: validator.New(),
	}
}

// toEvaluationDTO конвертирует модель Evaluation в DTO
func (s *EvaluationService) toEvaluationDTO(evaluation models.Evaluation) EvaluationDTO {
	return EvaluationDTO{
		ID:            evaluation.ID,
		OrderID:       evaluation.OrderID,
		CompanyID:     evaluation.CompanyID,
		CompanyName:   evaluation.Company.DisplayName(),
		ScoreKindness: evaluation.ScoreKindness,
		ScoreQuality:  evaluation.ScoreQuality,
		ScoreSchedule: evaluation.ScoreSchedule,
		Comment:       evaluation.Comment,
		CreatedAt:     evaluation.CreatedAt.Format(time.RFC3339),
	}
}

// Create создает оценку по заявке. Компания берется из назначения заявки.
func (s *EvaluationService) Create(dto CreateEvaluationDTO) (*EvaluationDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Получаем заявку
	var order models.Order
	if err := s.db.Preload("Company").First(&order, dto.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.New("ошибка при поиске заявки")
	}

	if order.CompanyID == nil {
		return nil, errors.New("по заявке не назначен подрядчик")
	}

	// Проверяем, нет ли уже оценки по заявке
	var existing models.Evaluation
	if err := s.db.Where("order_id = ?", dto.OrderID).First(&existing).Error; err == nil {
		return nil, errors.New("оценка по этой заявке уже оставлена")
	}

	evaluation := &models.Evaluation{
		OrderID:       dto.OrderID,
		CompanyID:     *order.CompanyID,
		ScoreKindness: dto.ScoreKindness,
		ScoreQuality:  dto.ScoreQuality,
		ScoreSchedule: dto.ScoreSchedule,
		Comment:       dto.Comment,
	}
	if err := s.db.Create(evaluation).Error; err != nil {
		return nil, errors.New("ошибка при создании оценки")
	}
	if order.Company != nil {
		evaluation.Company = *order.Company
	}

	result := s.toEvaluationDTO(*evaluation)
	return &result, nil
}

// ListByCompany возвращает оценки компании
func (s *EvaluationService) ListByCompany(companyID uint) ([]EvaluationDTO, error) {
	var evaluations []models.Evaluation
	if err := s.db.Preload("Company").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&evaluations).Error; err != nil {
		return nil, errors.New("ошибка при получении оценок")
	}

	result := make([]EvaluationDTO, 0, len(evaluations))
	for _, evaluation := range evaluations {
		result = append(result, s.toEvaluationDTO(evaluation))
	}
	return result, nil
}

// CompanyScore возвращает средние оценки компании
func (s *EvaluationService) CompanyScore(companyID uint) (*CompanyScoreDTO, error) {
	score := &CompanyScoreDTO{CompanyID: companyID}

	if err := s.db.Model(&models.Evaluation{}).
		Where("company_id = ?", companyID).
		Count(&score.EvaluationCount).Error; err != nil {
		return nil, errors.New("ошибка при подсчете оценок")
	}
	if score.EvaluationCount == 0 {
		return score, nil
	}

	row := s.db.Model(&models.Evaluation{}).
		Where("company_id = ?", companyID).
		Select("AVG(score_kindness), AVG(score_quality), AVG(score_schedule)").
		Row()
	if err := row.Scan(&score.AvgKindness, &score.AvgQuality, &score.AvgSchedule); err != nil {
		return nil, errors.New("ошибка при расчете средних оценок")
	}

	return score, nil
}
