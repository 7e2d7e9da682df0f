package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adminProject/database"
	"adminProject/services"
)

// newTestStopController создает контроллер без подключения к базе данных.
// Пути, не требующие авторизации, до базы не доходят.
func newTestStopController() *StopController {
	return NewStopController(&database.Database{}, nil)
}

// withStaff добавляет сотрудника в контекст запроса, как это делает middleware
func withStaff(r *http.Request, staffID uint, nickname string) *http.Request {
	ctx := context.WithValue(r.Context(), "staff_id", staffID)
	ctx = context.WithValue(ctx, "nickname", nickname)
	return r.WithContext(ctx)
}

func TestStopCreateRequiresAuth(t *testing.T) {
	// Создаем тестовый HTTP-запрос без авторизации
	req, err := http.NewRequest("POST", "/api/stops", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(newTestStopController().Create)

	// Выполняем запрос
	handler.ServeHTTP(rr, req)

	// Проверяем статус код
	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusUnauthorized)
	}

	// Проверяем тело ответа
	if !strings.Contains(rr.Body.String(), "Login required") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestStopCreateRejectsInvalidBody(t *testing.T) {
	// Создаем тестовый запрос с некорректным JSON
	req, err := http.NewRequest("POST", "/api/stops", strings.NewReader("not json"))
	if err != nil {
		t.Fatal(err)
	}
	req = withStaff(req, 1, "tester")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(newTestStopController().Create)

	// Выполняем запрос
	handler.ServeHTTP(rr, req)

	// Проверяем статус код
	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusBadRequest)
	}
}

func TestStopListWithoutAuthReturnsEmpty(t *testing.T) {
	// Создаем тестовый запрос без авторизации
	req, err := http.NewRequest("GET", "/api/stops", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(newTestStopController().List)

	// Выполняем запрос
	handler.ServeHTTP(rr, req)

	// Неавторизованный список отдает 200 с пустым результатом
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	var list services.StopListDTO
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}

	if len(list.Items) != 0 {
		t.Errorf("items = %d, want 0", len(list.Items))
	}
	if list.Counts.Pending != 0 || list.Counts.Active != 0 || list.Counts.Ended != 0 {
		t.Errorf("counts = %+v, want нулевые счетчики", list.Counts)
	}
}

func TestStopReleaseRequiresAuth(t *testing.T) {
	// Создаем тестовый запрос без авторизации
	req, err := http.NewRequest("POST", "/api/stops/1/release", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(newTestStopController().Release)

	// Выполняем запрос
	handler.ServeHTTP(rr, req)

	// Проверяем статус код
	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusUnauthorized)
	}
}
