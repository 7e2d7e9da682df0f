package services

import (
	"errors"
	"fmt"
	"time"

	"adminProject/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateCompanyDTO представляет данные для создания компании
type CreateCompanyDTO struct {
	NamePrimary   string `json:"name_primary" validate:"required,min=2,max=100"`
	NameSecondary string `json:"name_secondary" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Region        string `json:"region" validate:"omitempty,max=50"`
	Condition     int    `json:"condition" validate:"omitempty,oneof=1 2 3"`
}

// CompanyDTO представляет ответ с данными компании
type CompanyDTO struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	NamePrimary string `json:"name_primary"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Region      string `json:"region"`
	Condition   int    `json:"condition"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CompanyService предоставляет методы для работы со справочником компаний
type CompanyService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewCompanyService создает новый экземпляр CompanyService
func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{
		db:        db,
		validator: validator.New(),
	}
}

// toCompanyDTO конвертирует модель Company в DTO
func (s *CompanyService) toCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		DisplayName: company.DisplayName(),
		NamePrimary: company.NamePrimary,
		Email:       company.Email,
		Phone:       company.Phone,
		Region:      company.Region,
		Condition:   int(company.Condition),
		CreatedAt:   company.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   company.UpdatedAt.Format(time.RFC3339),
	}
}

// GetByID возвращает компанию по ID
func (s *CompanyService) GetByID(id uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, errors.New("ошибка при поиске компании")
	}
	return &company, nil
}

// DisplayNameFor возвращает отображаемое имя компании по ID.
// Висячая ссылка дает заглушку, а не ошибку.
func (s *CompanyService) DisplayNameFor(id uint) string {
	company, err := s.GetByID(id)
	if err != nil {
		return fmt.Sprintf("company #%d", id)
	}
	return company.DisplayName()
}

// Create создает новую компанию
func (s *CompanyService) Create(dto CreateCompanyDTO) (*CompanyDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	condition := models.CompanyConditionActive
	if dto.Condition != 0 {
		condition = models.CompanyCondition(dto.Condition)
	}

	company := &models.Company{
		NamePrimary:   dto.NamePrimary,
		NameSecondary: dto.NameSecondary,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Region:        dto.Region,
		Condition:     condition,
	}
	if err := s.db.Create(company).Error; err != nil {
		return nil, errors.New("ошибка при создании компании")
	}

	result := s.toCompanyDTO(*company)
	return &result, nil
}

// Update обновляет данные компании
func (s *CompanyService) Update(id uint, dto CreateCompanyDTO) (*CompanyDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Получаем компанию
	company, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Обновляем поля
	company.NamePrimary = dto.NamePrimary
	company.NameSecondary = dto.NameSecondary
	company.Email = dto.Email
	company.Phone = dto.Phone
	company.Region = dto.Region
	if dto.Condition != 0 {
		company.Condition = models.CompanyCondition(dto.Condition)
	}

	if err := s.db.Save(company).Error; err != nil {
		return nil, errors.New("ошибка при обновлении компании")
	}

	result := s.toCompanyDTO(*company)
	return &result, nil
}

// List возвращает компании, опционально отфильтрованные по коду состояния
func (s *CompanyService) List(condition int) ([]CompanyDTO, error) {
	var companies []models.Company
	query := s.db.Order("id ASC")
	if condition != 0 {
		query = query.Where("condition = ?", condition)
	}
	if err := query.Find(&companies).Error; err != nil {
		return nil, errors.New("ошибка при получении списка компаний")
	}

	result := make([]CompanyDTO, 0, len(companies))
	for _, company := range companies {
		result = append(result, s.toCompanyDTO(company))
	}
	return result, nil
}
