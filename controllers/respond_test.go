package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"adminProject/services"
)

func TestRespondServiceErrorNotFound(t *testing.T) {
	rr := httptest.NewRecorder()

	// Отсутствие записи отдается как 404
	respondServiceError(rr, services.ErrStopNotFound)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusNotFound)
	}
}

func TestRespondServiceErrorBadRequest(t *testing.T) {
	rr := httptest.NewRecorder()

	// Прочие ошибки сервисов отдаются как 400
	respondServiceError(rr, errors.New("дата окончания не может быть раньше даты начала"))

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusBadRequest)
	}
}
