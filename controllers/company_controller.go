package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
)

// CompanyController обрабатывает запросы справочника компаний
type CompanyController struct {
	companyService *services.CompanyService
}

// NewCompanyController создает новый экземпляр CompanyController
func NewCompanyController(db *database.Database) *CompanyController {
	return &CompanyController{
		companyService: services.NewCompanyService(db.DB),
	}
}

// Create обрабатывает запрос на создание компании
func (c *CompanyController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := c.companyService.Create(dto)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

// Update обрабатывает запрос на изменение компании
func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := c.companyService.Update(id, dto)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// List обрабатывает запрос на список компаний
// (опциональный параметр запроса condition)
func (c *CompanyController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, []services.CompanyDTO{})
		return
	}

	condition := 0
	if raw := r.URL.Query().Get("condition"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 3 {
			http.Error(w, "Invalid condition", http.StatusBadRequest)
			return
		}
		condition = parsed
	}

	companies, err := c.companyService.List(condition)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, companies)
}
