package controllers

import (
	"encoding/json"
	"net/http"

	"adminProject/services"
)

// respondJSON отправляет JSON-ответ с указанным статусом
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondSuccess отправляет ответ об успешной операции
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// respondError отправляет ответ об ошибке в формате AJAX-эндпоинтов
func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

// respondServiceError выбирает HTTP-статус по виду ошибки сервиса:
// отсутствие записи отдается как 404, остальное — как 400
func respondServiceError(w http.ResponseWriter, err error) {
	if services.IsNotFound(err) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondError(w, http.StatusBadRequest, err)
}
