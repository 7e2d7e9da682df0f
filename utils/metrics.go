package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	TotalLatency    time.Duration
	LastRequestTime time.Time

	// Метрики предметной области
	StopsCreated    int64
	StopsReleased   int64
	TermsCreated    int64
	TermsReleased   int64
	FeesCreated     int64
	FeesMarkedPaid  int64
	RemindersSent   int64
	OrdersAssigned  int64
	LastDomainEvent time.Time
}

// MetricsSnapshot представляет снимок метрик для отдачи наружу
type MetricsSnapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	FailedRequests int64   `json:"failed_requests"`
	AverageLatency float64 `json:"average_latency_ms"`
	StopsCreated   int64   `json:"stops_created"`
	StopsReleased  int64   `json:"stops_released"`
	TermsCreated   int64   `json:"terms_created"`
	TermsReleased  int64   `json:"terms_released"`
	FeesCreated    int64   `json:"fees_created"`
	FeesMarkedPaid int64   `json:"fees_marked_paid"`
	RemindersSent  int64   `json:"reminders_sent"`
	OrdersAssigned int64   `json:"orders_assigned"`
}

// GlobalMetrics — метрики процесса
var GlobalMetrics = &Metrics{}

// RecordRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) RecordRequest(latency time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	if failed {
		m.FailedRequests++
	}
	m.TotalLatency += latency
	m.LastRequestTime = time.Now()
}

// RecordDomainEvent фиксирует событие предметной области по имени
func (m *Metrics) RecordDomainEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event {
	case "stop_created":
		m.StopsCreated++
	case "stop_released":
		m.StopsReleased++
	case "term_created":
		m.TermsCreated++
	case "term_released":
		m.TermsReleased++
	case "fee_created":
		m.FeesCreated++
	case "fee_marked_paid":
		m.FeesMarkedPaid++
	case "reminder_sent":
		m.RemindersSent++
	case "order_assigned":
		m.OrdersAssigned++
	}
	m.LastDomainEvent = time.Now()
}

// Snapshot возвращает снимок метрик
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalRequests:  m.TotalRequests,
		FailedRequests: m.FailedRequests,
		StopsCreated:   m.StopsCreated,
		StopsReleased:  m.StopsReleased,
		TermsCreated:   m.TermsCreated,
		TermsReleased:  m.TermsReleased,
		FeesCreated:    m.FeesCreated,
		FeesMarkedPaid: m.FeesMarkedPaid,
		RemindersSent:  m.RemindersSent,
		OrdersAssigned: m.OrdersAssigned,
	}
	if m.TotalRequests > 0 {
		snapshot.AverageLatency = float64(m.TotalLatency.Milliseconds()) / float64(m.TotalRequests)
	}
	return snapshot
}
