package services

import (
	"errors"

	"adminProject/database"
	"adminProject/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffService struct {
	db *database.Database
}

type StaffDTO struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type CreateStaffRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func NewStaffService(db *database.Database) *StaffService {
	return &StaffService{db: db}
}

// CreateStaffInternal создает нового сотрудника
func (h *StaffService) CreateStaffInternal(req CreateStaffRequest) (*models.Staff, error) {
	// Проверяем, существует ли сотрудник с таким email
	if _, err := h.db.GetStaffByEmail(req.Email); err == nil {
		return nil, errors.New("сотрудник с таким email уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Проверяем уникальность ника: он подставляется в поле worker
	if _, err := h.db.GetStaffByNickname(req.Nickname); err == nil {
		return nil, errors.New("сотрудник с таким ником уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Создаем нового сотрудника
	staff := &models.Staff{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.db.CreateStaff(staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// FindByEmail ищет сотрудника по email
func (h *StaffService) FindByEmail(email string) (*models.Staff, error) {
	staff, err := h.db.GetStaffByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

// FindByID ищет сотрудника по ID
func (h *StaffService) FindByID(id uint) (*models.Staff, error) {
	staff, err := h.db.GetStaffByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}
