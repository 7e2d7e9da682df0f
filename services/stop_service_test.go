package services

import (
	"testing"
	"time"

	"adminProject/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB создает базу данных в памяти для тестов сервисов
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Stop{},
		&models.ImpossibleTerm{},
		&models.FixFeeDate{},
		&models.FixFee{},
		&models.Order{},
	); err != nil {
		t.Fatalf("не удалось выполнить миграцию тестовой базы: %v", err)
	}
	return db
}

func TestStopReleaseMissingID(t *testing.T) {
	service := NewStopService(newTestDB(t), nil)

	_, err := service.Release(12345, date(2025, time.June, 1))
	if err == nil {
		t.Fatal("Release() по несуществующему id должен вернуть ошибку")
	}
	if !IsNotFound(err) {
		t.Errorf("Release() вернул %v, ожидалась ошибка отсутствия записи", err)
	}
}

func TestStopUpdateMissingID(t *testing.T) {
	service := NewStopService(newTestDB(t), nil)

	dto := CreateStopDTO{CompanyID: 1, Reason: "нарушение условий"}
	_, err := service.Update(12345, dto, "tester", date(2025, time.June, 1))
	if err == nil {
		t.Fatal("Update() по несуществующему id должен вернуть ошибку")
	}
	if !IsNotFound(err) {
		t.Errorf("Update() вернул %v, ожидалась ошибка отсутствия записи", err)
	}
}

func TestStopReleaseMovesIntervalToPast(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Company{NamePrimary: "ООО Ремстрой", Condition: models.CompanyConditionActive}).Error; err != nil {
		t.Fatal(err)
	}
	service := NewStopService(db, nil)

	today := date(2025, time.June, 1)
	created, err := service.Create(CreateStopDTO{CompanyID: 1, Reason: "нарушение условий"}, "tester", today)
	if err != nil {
		t.Fatalf("Create() вернул ошибку: %v", err)
	}
	if created.Status != IntervalStatusActive || !created.OpenEnded {
		t.Errorf("Create() без дат должен дать активную открытую приостановку, получено %+v", created)
	}

	released, err := service.Release(created.ID, today)
	if err != nil {
		t.Fatalf("Release() вернул ошибку: %v", err)
	}
	if released.StartDate != "2025-05-31" || released.EndDate != "2025-05-31" {
		t.Errorf("Release() дал интервал [%s, %s], want [2025-05-31, 2025-05-31]",
			released.StartDate, released.EndDate)
	}
	if released.Status != IntervalStatusEnded {
		t.Errorf("Release() дал статус %v, want %v", released.Status, IntervalStatusEnded)
	}

	// Повторное завершение дает тот же результат
	again, err := service.Release(created.ID, today)
	if err != nil {
		t.Fatalf("повторный Release() вернул ошибку: %v", err)
	}
	if again.StartDate != released.StartDate || again.EndDate != released.EndDate {
		t.Error("повторный Release() изменил интервал")
	}
}
