package controllers

import (
	"encoding/json"
	"net/http"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
	"adminProject/utils"
)

// TermController обрабатывает запросы, связанные с недоступными периодами
type TermController struct {
	termService *services.TermService
}

// NewTermController создает новый экземпляр TermController
func NewTermController(db *database.Database) *TermController {
	return &TermController{
		termService: services.NewTermService(db.DB),
	}
}

// Create обрабатывает запрос на создание недоступного периода
func (c *TermController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	_, nickname, err := middleware.GetStaffFromContext(r)
	if err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateTermDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	term, err := c.termService.Create(dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("term_created")
	respondJSON(w, http.StatusCreated, term)
}

// Update обрабатывает запрос на изменение недоступного периода
func (c *TermController) Update(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	_, nickname, err := middleware.GetStaffFromContext(r)
	if err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateTermDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	term, err := c.termService.Update(id, dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, term)
}

// Release обрабатывает запрос на досрочное завершение периода
func (c *TermController) Release(w http.ResponseWriter, r *http.Request) {
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

	term, err := c.termService.Release(id, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("term_released")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Недоступный период завершен",
		"term":    term,
	})
}

// Delete обрабатывает запрос на удаление недоступного периода
func (c *TermController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.termService.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, "Недоступный период удален")
}

// List обрабатывает запрос на получение списка недоступных периодов
func (c *TermController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, services.TermListDTO{Items: []services.TermDTO{}})
		return
	}

	list, err := c.termService.List(services.Today())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}
