package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
	"adminProject/utils"
)

// FixFeeController обрабатывает запросы, связанные с абонентской платой
type FixFeeController struct {
	feeService *services.FixFeeService
}

// NewFixFeeController создает новый экземпляр FixFeeController
func NewFixFeeController(db *database.Database, email *services.EmailService, rateFeedURL string) *FixFeeController {
	return &FixFeeController{
		feeService: services.NewFixFeeService(db.DB, email, rateFeedURL),
	}
}

// Create обрабатывает запрос на начисление платы
func (c *FixFeeController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	_, nickname, err := middleware.GetStaffFromContext(r)
	if err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateFixFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.Create(dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("fee_created")
	respondJSON(w, http.StatusCreated, fee)
}

// Update обрабатывает запрос на изменение начисления
func (c *FixFeeController) Update(w http.ResponseWriter, r *http.Request) {
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
	var dto services.CreateFixFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.Update(id, dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fee)
}

// MarkPaid обрабатывает запрос на отметку об оплате
func (c *FixFeeController) MarkPaid(w http.ResponseWriter, r *http.Request) {
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
	var dto services.MarkPaidDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.MarkPaid(id, dto, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("fee_marked_paid")
	respondJSON(w, http.StatusOK, fee)
}

// Delete обрабатывает запрос на удаление начисления
func (c *FixFeeController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.feeService.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, "Начисление удалено")
}

// List обрабатывает запрос на список начислений периода
// (параметр запроса fee_date_id)
func (c *FixFeeController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, services.FixFeeListDTO{Items: []services.FixFeeDTO{}})
		return
	}

	feeDateID := uint(0)
	if raw := r.URL.Query().Get("fee_date_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, "Invalid fee_date_id", http.StatusBadRequest)
			return
		}
		feeDateID = uint(parsed)
	}

	list, err := c.feeService.ListByPeriod(feeDateID, services.Today())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// RemindOverdue обрабатывает запрос на рассылку напоминаний о просрочке
func (c *FixFeeController) RemindOverdue(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	feeDateID := uint(0)
	if raw := r.URL.Query().Get("fee_date_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, "Invalid fee_date_id", http.StatusBadRequest)
			return
		}
		feeDateID = uint(parsed)
	}

	sent, err := c.feeService.SendOverdueReminders(feeDateID, services.Today())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	for i := 0; i < sent; i++ {
		utils.GlobalMetrics.RecordDomainEvent("reminder_sent")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sent":    sent,
	})
}

// CreateFeeDate обрабатывает запрос на создание расчетного периода
func (c *FixFeeController) CreateFeeDate(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateFeeDateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	feeDate, err := c.feeService.CreateFeeDate(dto)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, feeDate)
}

// ListFeeDates обрабатывает запрос на список расчетных периодов
func (c *FixFeeController) ListFeeDates(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, []services.FeeDateDTO{})
		return
	}

	feeDates, err := c.feeService.ListFeeDates()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, feeDates)
}
