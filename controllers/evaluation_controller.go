package controllers

import (
	"encoding/json"
	"net/http"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
)

// EvaluationController обрабатывает запросы, связанные с оценками клиентов
type EvaluationController struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationController создает новый экземпляр EvaluationController
func NewEvaluationController(db *database.Database) *EvaluationController {
	return &EvaluationController{
		evaluationService: services.NewEvaluationService(db.DB),
	}
}

// Create обрабатывает запрос на создание оценки
func (c *EvaluationController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateEvaluationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	evaluation, err := c.evaluationService.Create(dto)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, evaluation)
}

// ListByCompany обрабатывает запрос на оценки компании
func (c *EvaluationController) ListByCompany(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, []services.EvaluationDTO{})
		return
	}

	companyID, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	evaluations, err := c.evaluationService.ListByCompany(companyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, evaluations)
}

// CompanyScore обрабатывает запрос на средние оценки компании
func (c *EvaluationController) CompanyScore(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	companyID, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	score, err := c.evaluationService.CompanyScore(companyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, score)
}
