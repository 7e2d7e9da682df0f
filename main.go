package main

import (
	"fmt"
	"log"
	"net/http"

	"adminProject/config"
	"adminProject/controllers"
	"adminProject/database"
	"adminProject/middleware"
	"adminProject/services"
	"adminProject/utils"
	"github.com/gorilla/mux"
)

// healthHandler отвечает на проверку работоспособности
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// metricsHandler отдает снимок метрик процесса
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snapshot := utils.GlobalMetrics.Snapshot()
	fmt.Fprintf(w, `{"total_requests":%d,"failed_requests":%d,"stops_created":%d,"stops_released":%d}`,
		snapshot.TotalRequests, snapshot.FailedRequests, snapshot.StopsCreated, snapshot.StopsReleased)
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных с миграциями
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.RateLimitMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(db)
	companyController := controllers.NewCompanyController(db)
	stopController := controllers.NewStopController(db, emailService)
	termController := controllers.NewTermController(db)
	fixFeeController := controllers.NewFixFeeController(db, emailService, cfg.RateFeed.URL)
	orderController := controllers.NewOrderController(db)
	evaluationController := controllers.NewEvaluationController(db)

	jwtKey := []byte(authController.GetJWTKey())

	// Проверка работоспособности
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// Публичные маршруты для аутентификации
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")

	// Списки доступны и без авторизации: неавторизованный запрос
	// получает пустой результат с нулевыми счетчиками
	public := router.PathPrefix("/api").Subrouter()
	public.Use(middleware.OptionalAuthMiddleware(jwtKey))
	public.HandleFunc("/companies", companyController.List).Methods("GET")
	public.HandleFunc("/stops", stopController.List).Methods("GET")
	public.HandleFunc("/terms", termController.List).Methods("GET")
	public.HandleFunc("/fees", fixFeeController.List).Methods("GET")
	public.HandleFunc("/feeDates", fixFeeController.ListFeeDates).Methods("GET")
	public.HandleFunc("/orders", orderController.List).Methods("GET")
	public.HandleFunc("/companies/{id}/evaluations", evaluationController.ListByCompany).Methods("GET")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(jwtKey))

	// Маршруты для работы с компаниями
	protected.HandleFunc("/companies", companyController.Create).Methods("POST")
	protected.HandleFunc("/companies/{id}", companyController.Update).Methods("PUT")
	protected.HandleFunc("/companies/{id}/score", evaluationController.CompanyScore).Methods("GET")

	// Маршруты для работы с приостановками
	protected.HandleFunc("/stops", stopController.Create).Methods("POST")
	protected.HandleFunc("/stops/{id}", stopController.Update).Methods("PUT")
	protected.HandleFunc("/stops/{id}/release", stopController.Release).Methods("POST")
	protected.HandleFunc("/stops/{id}", stopController.Delete).Methods("DELETE")

	// Маршруты для работы с недоступными периодами
	protected.HandleFunc("/terms", termController.Create).Methods("POST")
	protected.HandleFunc("/terms/{id}", termController.Update).Methods("PUT")
	protected.HandleFunc("/terms/{id}/release", termController.Release).Methods("POST")
	protected.HandleFunc("/terms/{id}", termController.Delete).Methods("DELETE")

	// Маршруты для работы с абонентской платой
	protected.HandleFunc("/feeDates", fixFeeController.CreateFeeDate).Methods("POST")
	protected.HandleFunc("/fees", fixFeeController.Create).Methods("POST")
	protected.HandleFunc("/fees/{id}", fixFeeController.Update).Methods("PUT")
	protected.HandleFunc("/fees/{id}/paid", fixFeeController.MarkPaid).Methods("POST")
	protected.HandleFunc("/fees/{id}", fixFeeController.Delete).Methods("DELETE")
	protected.HandleFunc("/fees/remind", fixFeeController.RemindOverdue).Methods("POST")

	// Маршруты для работы с заявками
	protected.HandleFunc("/orders", orderController.Create).Methods("POST")
	protected.HandleFunc("/orders/{id}/status", orderController.UpdateStatus).Methods("PUT")
	protected.HandleFunc("/orders/{id}/assign", orderController.Assign).Methods("POST")

	// Маршруты для работы с оценками
	protected.HandleFunc("/evaluations", evaluationController.Create).Methods("POST")

	// Метрики процесса
	protected.HandleFunc("/metrics", metricsHandler).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
