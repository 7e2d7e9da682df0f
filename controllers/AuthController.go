package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"adminProject/config"
	"adminProject/database"
	"adminProject/services"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	staffHandler *services.StaffService
	validate     *validator.Validate
	config       *config.Config
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type Claims struct {
	StaffID  uint   `json:"staff_id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type SignUpRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type Token struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	StaffID  uint   `json:"staffId"`
	Nickname string `json:"nickname"`
}

type AuthResponse struct {
	Token Token `json:"token"`
	Staff struct {
		ID       uint   `json:"id"`
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
	} `json:"staff"`
}

func NewAuthController(db *database.Database) *AuthController {
	validate := validator.New()

	// Регистрация кастомной валидации для пароля
	validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		// Проверка на наличие хотя бы одной цифры
		hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
		// Проверка на наличие хотя бы одной заглавной буквы
		hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
		// Проверка на наличие хотя бы одной строчной буквы
		hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
		// Проверка на наличие хотя бы одного специального символа
		hasSpecial := regexp.MustCompile(`[!@#$%^&*]`).MatchString(password)

		return hasNumber && hasUpper && hasLower && hasSpecial
	})

	// Получаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return &AuthController{
		staffHandler: services.NewStaffService(db),
		validate:     validate,
		config:       cfg,
	}
}

// GetJWTKey возвращает ключ подписи JWT
func (c *AuthController) GetJWTKey() string {
	return c.config.JWT.SecretKey
}

// issueToken выписывает JWT для сотрудника
func (c *AuthController) issueToken(staffID uint, nickname, email string) (string, error) {
	expiresAt := time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)
	claims := &Claims{
		StaffID:  staffID,
		Nickname: nickname,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.JWT.SecretKey))
}

// SignUp обрабатывает регистрацию сотрудника
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	// Создаем сотрудника
	staff, err := c.staffHandler.CreateStaffInternal(services.CreateStaffRequest{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Выписываем токен
	tokenString, err := c.issueToken(staff.ID, staff.Nickname, staff.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	// Формируем ответ
	response := AuthResponse{
		Token: Token{
			Token:    tokenString,
			Email:    staff.Email,
			StaffID:  staff.ID,
			Nickname: staff.Nickname,
		},
	}
	response.Staff.ID = staff.ID
	response.Staff.Nickname = staff.Nickname
	response.Staff.Email = staff.Email

	respondJSON(w, http.StatusCreated, response)
}

// SignIn обрабатывает вход сотрудника
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	// Ищем сотрудника по email
	staff, err := c.staffHandler.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Проверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Выписываем токен
	tokenString, err := c.issueToken(staff.ID, staff.Nickname, staff.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := AuthResponse{
		Token: Token{
			Token:    tokenString,
			Email:    staff.Email,
			StaffID:  staff.ID,
			Nickname: staff.Nickname,
		},
	}
	response.Staff.ID = staff.ID
	response.Staff.Nickname = staff.Nickname
	response.Staff.Email = staff.Email

	respondJSON(w, http.StatusOK, response)
}
