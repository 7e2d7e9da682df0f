package services

import (
	"testing"
	"time"

	"adminProject/models"
)

func TestDueStatus(t *testing.T) {
	due := date(2025, time.September, 1)
	paid := date(2025, time.September, 5)

	tests := []struct {
		name         string
		paid         *time.Time
		today        time.Time
		wantStatus   FeeStatus
		wantDays     int
		wantImminent bool
	}{
		{"просрочено на девять дней", nil, date(2025, time.September, 10), FeeStatusOverdue, 9, false},
		{"просрочено на день", nil, date(2025, time.September, 2), FeeStatusOverdue, 1, false},
		{"срок сегодня", nil, date(2025, time.September, 1), FeeStatusDueToday, 0, false},
		{"до срока три дня", nil, date(2025, time.August, 29), FeeStatusDueIn, 3, true},
		{"до срока десять дней", nil, date(2025, time.August, 22), FeeStatusDueIn, 10, false},
		{"оплачено до срока", &paid, date(2025, time.August, 20), FeeStatusCompleted, 0, false},
		{"оплачено после срока", &paid, date(2025, time.September, 20), FeeStatusCompleted, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueStatus(tt.paid, due, tt.today)
			if got.Status != tt.wantStatus {
				t.Errorf("DueStatus().Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Days != tt.wantDays {
				t.Errorf("DueStatus().Days = %d, want %d", got.Days, tt.wantDays)
			}
			if got.Imminent != tt.wantImminent {
				t.Errorf("DueStatus().Imminent = %v, want %v", got.Imminent, tt.wantImminent)
			}
		})
	}
}

func TestLateFee(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		overdueDays int
		want        int64
	}{
		{"девять дней просрочки", 165000, 9, 148},
		{"один день просрочки", 165000, 1, 16},
		{"нет просрочки", 165000, 0, 0},
		{"отрицательные дни", 165000, -3, 0},
		{"мелкая сумма округляется вниз до нуля", 100, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LateFee(tt.amount, tt.overdueDays, DefaultLateFeeDailyRate)
			if got != tt.want {
				t.Errorf("LateFee() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsEarlyPayment(t *testing.T) {
	due := date(2025, time.September, 1)
	early := date(2025, time.August, 25)
	onTime := date(2025, time.September, 1)
	late := date(2025, time.September, 10)

	if !IsEarlyPayment(&early, due) {
		t.Error("IsEarlyPayment() = false для оплаты до срока")
	}
	if IsEarlyPayment(&onTime, due) {
		t.Error("IsEarlyPayment() = true для оплаты в срок")
	}
	if IsEarlyPayment(&late, due) {
		t.Error("IsEarlyPayment() = true для оплаты после срока")
	}
	if IsEarlyPayment(nil, due) {
		t.Error("IsEarlyPayment() = true без оплаты")
	}
}

func TestDelayDays(t *testing.T) {
	due := date(2025, time.September, 1)
	early := date(2025, time.August, 25)
	onTime := date(2025, time.September, 1)
	late := date(2025, time.September, 10)

	if got := DelayDays(&late, due); got != 9 {
		t.Errorf("DelayDays() = %d, want 9", got)
	}
	if got := DelayDays(&onTime, due); got != 0 {
		t.Errorf("DelayDays() при оплате в срок = %d, want 0", got)
	}
	if got := DelayDays(&early, due); got != 0 {
		t.Errorf("DelayDays() при ранней оплате = %d, want 0", got)
	}
	if got := DelayDays(nil, due); got != 0 {
		t.Errorf("DelayDays() без оплаты = %d, want 0", got)
	}
}

func TestFixFeeCreateRejectsDuplicatePeriod(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Company{NamePrimary: "ООО Ремстрой", Condition: models.CompanyConditionActive}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.FixFeeDate{Label: "2025-09", DueDate: date(2025, time.September, 1)}).Error; err != nil {
		t.Fatal(err)
	}
	service := NewFixFeeService(db, nil, "")

	today := date(2025, time.August, 1)
	dto := CreateFixFeeDTO{CompanyID: 1, FeeDateID: 1, Amount: 165000}

	if _, err := service.Create(dto, "tester", today); err != nil {
		t.Fatalf("первое начисление вернуло ошибку: %v", err)
	}

	// Пара (компания, период) уникальна
	if _, err := service.Create(dto, "tester", today); err == nil {
		t.Fatal("повторное начисление за тот же период должно быть отклонено")
	}
}

func TestFixFeeMarkPaidMissingID(t *testing.T) {
	service := NewFixFeeService(newTestDB(t), nil, "")

	_, err := service.MarkPaid(12345, MarkPaidDTO{}, "tester", date(2025, time.September, 1))
	if err == nil {
		t.Fatal("MarkPaid() по несуществующему id должен вернуть ошибку")
	}
	if !IsNotFound(err) {
		t.Errorf("MarkPaid() вернул %v, ожидалась ошибка отсутствия записи", err)
	}
}
