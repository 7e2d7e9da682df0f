package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
	"adminProject/utils"
	"github.com/gorilla/mux"
)

// StopController обрабатывает запросы, связанные с приостановками компаний
type StopController struct {
	stopService *services.StopService
}

// NewStopController создает новый экземпляр StopController
func NewStopController(db *database.Database, email *services.EmailService) *StopController {
	return &StopController{
		stopService: services.NewStopService(db.DB, email),
	}
}

// parseID извлекает числовой ID из переменных маршрута
func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Create обрабатывает запрос на создание приостановки
func (c *StopController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	_, nickname, err := middleware.GetStaffFromContext(r)
	if err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateStopDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Создаем приостановку; имя сотрудника подставляется из авторизации
	stop, err := c.stopService.Create(dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("stop_created")
	respondJSON(w, http.StatusCreated, stop)
}

// Update обрабатывает запрос на изменение приостановки
func (c *StopController) Update(w http.ResponseWriter, r *http.Request) {
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
	var dto services.CreateStopDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stop, err := c.stopService.Update(id, dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stop)
}

// Release обрабатывает запрос на досрочное завершение приостановки
func (c *StopController) Release(w http.ResponseWriter, r *http.Request) {
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

	stop, err := c.stopService.Release(id, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("stop_released")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Приостановка завершена",
		"stop":    stop,
	})
}

// Delete обрабатывает запрос на удаление приостановки
func (c *StopController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.stopService.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, "Приостановка удалена")
}

// List обрабатывает запрос на получение списка приостановок.
// Для неавторизованных запросов отдается пустой список с нулевыми
// счетчиками, а не ошибка.
func (c *StopController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, services.StopListDTO{Items: []services.StopDTO{}})
		return
	}

	list, err := c.stopService.List(services.Today())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}
