package controllers

import (
	"encoding/json"
	"net/http"

	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
	"adminProject/utils"
)

// OrderController обрабатывает запросы, связанные с заявками клиентов
type OrderController struct {
	orderService *services.OrderService
}

// NewOrderController создает новый экземпляр OrderController
func NewOrderController(db *database.Database) *OrderController {
	return &OrderController{
		orderService: services.NewOrderService(db.DB),
	}
}

// Create обрабатывает запрос на создание заявки
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	// Получаем сотрудника из контекста (установлен middleware)
	_, nickname, err := middleware.GetStaffFromContext(r)
	if err != nil {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.Create(dto, nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// UpdateStatus обрабатывает запрос на смену статуса заявки
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	var dto services.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateStatus(id, dto, nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Assign обрабатывает запрос на подбор подрядчика для заявки
func (c *OrderController) Assign(w http.ResponseWriter, r *http.Request) {
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

	order, err := c.orderService.AssignCompany(id, nickname, services.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.GlobalMetrics.RecordDomainEvent("order_assigned")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Подрядчик назначен",
		"order":   order,
	})
}

// List обрабатывает запрос на список заявок
// (опциональный параметр запроса status)
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetStaffFromContext(r); err != nil {
		respondJSON(w, http.StatusOK, []services.OrderDTO{})
		return
	}

	orders, err := c.orderService.List(r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
