package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"adminProject/models"
	"github.com/beevik/etree"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// FeeStatus представляет статус оплаты абонентской платы
type FeeStatus string

const (
	FeeStatusCompleted FeeStatus = "COMPLETED" // Оплачено
	FeeStatusDueIn     FeeStatus = "DUE_IN"    // До срока осталось N дней
	FeeStatusDueToday  FeeStatus = "DUE_TODAY" // Срок оплаты сегодня
	FeeStatusOverdue   FeeStatus = "OVERDUE"   // Просрочено на N дней
)

// DefaultLateFeeDailyRate — дневная ставка пени по умолчанию
const DefaultLateFeeDailyRate = 0.0001

// imminentDueDays — порог, после которого ближайший срок считается срочным
const imminentDueDays = 3

// FeeDueStatus представляет вычисленный статус оплаты
type FeeDueStatus struct {
	Status   FeeStatus `json:"status"`
	Days     int       `json:"days"`     // Для DUE_IN и OVERDUE
	Imminent bool      `json:"imminent"` // DUE_IN с Days <= 3
}

// DueStatus вычисляет статус оплаты из даты оплаты, срока и текущей даты.
// Оплаченная запись всегда COMPLETED, даже при ранней или поздней оплате.
func DueStatus(paid *time.Time, due, today time.Time) FeeDueStatus {
	if paid != nil {
		return FeeDueStatus{Status: FeeStatusCompleted}
	}

	due, today = DateOnly(due), DateOnly(today)
	switch {
	case today.Before(due):
		days := daysBetween(today, due)
		return FeeDueStatus{Status: FeeStatusDueIn, Days: days, Imminent: days <= imminentDueDays}
	case today.After(due):
		return FeeDueStatus{Status: FeeStatusOverdue, Days: daysBetween(due, today)}
	default:
		return FeeDueStatus{Status: FeeStatusDueToday}
	}
}

// LateFee рассчитывает пеню: floor(сумма * ставка * дни просрочки)
func LateFee(amount int64, overdueDays int, dailyRate float64) int64 {
	if overdueDays <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount) * dailyRate * float64(overdueDays)))
}

// IsEarlyPayment сообщает, была ли оплата раньше срока
func IsEarlyPayment(paid *time.Time, due time.Time) bool {
	if paid == nil {
		return false
	}
	return DateOnly(*paid).Before(DateOnly(due))
}

// DelayDays возвращает число дней опоздания оплаты; 0 без опоздания
func DelayDays(paid *time.Time, due time.Time) int {
	if paid == nil {
		return 0
	}
	delay := daysBetween(due, *paid)
	if delay < 0 {
		return 0
	}
	return delay
}

// FetchLateFeeDailyRate получает дневную ставку пени из XML-фида.
// Ожидаемый формат ответа: <RateFeed><DailyRate>0.0001</DailyRate></RateFeed>
func FetchLateFeeDailyRate(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, fmt.Errorf("ошибка запроса к фиду ставок: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("фид ставок вернул статус %d", resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return 0, fmt.Errorf("ошибка разбора XML фида ставок: %v", err)
	}

	element := doc.FindElement("//RateFeed/DailyRate")
	if element == nil {
		return 0, errors.New("в ответе фида нет элемента DailyRate")
	}

	rate, err := strconv.ParseFloat(element.Text(), 64)
	if err != nil || rate <= 0 {
		return 0, errors.New("фид вернул некорректную ставку")
	}
	return rate, nil
}

// CreateFixFeeDTO представляет данные для начисления абонентской платы
type CreateFixFeeDTO struct {
	CompanyID uint   `json:"company_id" validate:"required"`
	FeeDateID uint   `json:"fee_date_id" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	PayType   string `json:"pay_type" validate:"omitempty,oneof=TRANSFER CARD CASH"`
	Memo      string `json:"memo" validate:"max=255"`
}

// MarkPaidDTO представляет данные для отметки об оплате
type MarkPaidDTO struct {
	PaidDate string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}

// FixFeeDTO представляет ответ с данными начисления
type FixFeeDTO struct {
	ID          uint         `json:"id"`
	CompanyID   uint         `json:"company_id"`
	CompanyName string       `json:"company_name"`
	FeeDateID   uint         `json:"fee_date_id"`
	PeriodLabel string       `json:"period_label"`
	DueDate     string       `json:"due_date"`
	Amount      int64        `json:"amount"`
	PayType     string       `json:"pay_type"`
	PaidDate    string       `json:"paid_date,omitempty"`
	Memo        string       `json:"memo"`
	Worker      string       `json:"worker"`
	Due         FeeDueStatus `json:"due"`
	LateFee     int64        `json:"late_fee"`
	EarlyPaid   bool         `json:"early_paid"`
	DelayDays   int          `json:"delay_days"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// FixFeeListDTO представляет список начислений периода с итогами
type FixFeeListDTO struct {
	Items        []FixFeeDTO `json:"items"`
	PaidCount    int         `json:"paid_count"`
	UnpaidCount  int         `json:"unpaid_count"`
	OverdueCount int         `json:"overdue_count"`
	OverdueSum   int64       `json:"overdue_sum"`
	LateFeeSum   int64       `json:"late_fee_sum"`
}

// FixFeeService предоставляет методы для работы с абонентской платой
type FixFeeService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	dailyRate float64
}

// NewFixFeeService создает новый экземпляр FixFeeService.
// При настроенном фиде ставка пени берется из него, иначе — ставка
// по умолчанию; недоступность фида не мешает запуску.
func NewFixFeeService(db *gorm.DB, email *EmailService, rateFeedURL string) *FixFeeService {
	dailyRate := DefaultLateFeeDailyRate
	if rateFeedURL != "" {
		rate, err := FetchLateFeeDailyRate(rateFeedURL)
		if err != nil {
			log.Printf("Не удалось получить ставку пени из фида, используется ставка по умолчанию: %v", err)
		} else {
			dailyRate = rate
		}
	}

	return &FixFeeService{
		db:        db,
		validator: validator.New(),
		email:     email,
		dailyRate: dailyRate,
	}
}

// DailyRate возвращает действующую дневную ставку пени
func (s *FixFeeService) DailyRate() float64 {
	return s.dailyRate
}

// toFixFeeDTO конвертирует модель FixFee в DTO
func (s *FixFeeService) toFixFeeDTO(fee models.FixFee, today time.Time) FixFeeDTO {
	companyName := fee.Company.DisplayName()
	if fee.Company.ID == 0 {
		companyName = fmt.Sprintf("company #%d", fee.CompanyID)
	}

	due := DueStatus(fee.PaidDate, fee.FeeDate.DueDate, today)
	lateFee := int64(0)
	if due.Status == FeeStatusOverdue {
		lateFee = LateFee(fee.Amount, due.Days, s.dailyRate)
	}

	dto := FixFeeDTO{
		ID:          fee.ID,
		CompanyID:   fee.CompanyID,
		CompanyName: companyName,
		FeeDateID:   fee.FeeDateID,
		PeriodLabel: fee.FeeDate.Label,
		DueDate:     fee.FeeDate.DueDate.Format(dateLayout),
		Amount:      fee.Amount,
		PayType:     string(fee.PayType),
		Memo:        fee.Memo,
		Worker:      fee.Worker,
		Due:         due,
		LateFee:     lateFee,
		EarlyPaid:   IsEarlyPayment(fee.PaidDate, fee.FeeDate.DueDate),
		DelayDays:   DelayDays(fee.PaidDate, fee.FeeDate.DueDate),
		CreatedAt:   fee.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   fee.UpdatedAt.Format(time.RFC3339),
	}
	if fee.PaidDate != nil {
		dto.PaidDate = fee.PaidDate.Format(dateLayout)
	}
	return dto
}

// Create начисляет абонентскую плату компании за период
func (s *FixFeeService) Create(dto CreateFixFeeDTO, worker string, today time.Time) (*FixFeeDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	payType := models.FixFeePayTypeTransfer
	if dto.PayType != "" {
		payType = models.FixFeePayType(dto.PayType)
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Проверяем существование компании
	var company models.Company
	if err := tx.First(&company, dto.CompanyID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, errors.New("ошибка при поиске компании")
	}

	// Проверяем существование расчетного периода
	var feeDate models.FixFeeDate
	if err := tx.First(&feeDate, dto.FeeDateID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeDateNotFound
		}
		return nil, errors.New("ошибка при поиске расчетного периода")
	}

	// Проверяем, нет ли уже начисления за этот период
	var existingFee models.FixFee
	if err := tx.Where("company_id = ? AND fee_date_id = ?", dto.CompanyID, dto.FeeDateID).First(&existingFee).Error; err == nil {
		tx.Rollback()
		return nil, errors.New("плата за этот период уже начислена")
	}

	// Создаем начисление
	fee := &models.FixFee{
		CompanyID: dto.CompanyID,
		FeeDateID: dto.FeeDateID,
		Amount:    dto.Amount,
		PayType:   payType,
		Memo:      dto.Memo,
		Worker:    worker,
	}
	if err := tx.Create(fee).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при начислении платы")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	fee.Company = company
	fee.FeeDate = feeDate
	result := s.toFixFeeDTO(*fee, today)
	return &result, nil
}

// Update обновляет сумму, способ оплаты и примечание начисления
func (s *FixFeeService) Update(id uint, dto CreateFixFeeDTO, worker string, today time.Time) (*FixFeeDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	// Получаем начисление
	var fee models.FixFee
	if err := s.db.Preload("Company").Preload("FeeDate").First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFixFeeNotFound
		}
		return nil, errors.New("ошибка при поиске начисления")
	}

	// Пара (компания, период) неизменна после создания
	fee.Amount = dto.Amount
	if dto.PayType != "" {
		fee.PayType = models.FixFeePayType(dto.PayType)
	}
	fee.Memo = dto.Memo
	fee.Worker = worker

	if err := s.db.Save(&fee).Error; err != nil {
		return nil, errors.New("ошибка при обновлении начисления")
	}

	result := s.toFixFeeDTO(fee, today)
	return &result, nil
}

// MarkPaid отмечает начисление оплаченным; пустая дата означает сегодня
func (s *FixFeeService) MarkPaid(id uint, dto MarkPaidDTO, worker string, today time.Time) (*FixFeeDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	paid, err := parseOptionalDate(dto.PaidDate)
	if err != nil {
		return nil, err
	}
	if paid == nil {
		date := DateOnly(today)
		paid = &date
	}

	// Получаем начисление
	var fee models.FixFee
	if err := s.db.Preload("Company").Preload("FeeDate").First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFixFeeNotFound
		}
		return nil, errors.New("ошибка при поиске начисления")
	}

	fee.PaidDate = paid
	fee.Worker = worker

	if err := s.db.Save(&fee).Error; err != nil {
		return nil, errors.New("ошибка при отметке об оплате")
	}

	result := s.toFixFeeDTO(fee, today)
	return &result, nil
}

// Delete безвозвратно удаляет начисление
func (s *FixFeeService) Delete(id uint) error {
	// Проверяем существование записи
	var fee models.FixFee
	if err := s.db.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFixFeeNotFound
		}
		return errors.New("ошибка при поиске начисления")
	}

	if err := s.db.Delete(&fee).Error; err != nil {
		return errors.New("ошибка при удалении начисления")
	}
	return nil
}

// ListByPeriod возвращает начисления расчетного периода с итогами
func (s *FixFeeService) ListByPeriod(feeDateID uint, today time.Time) (*FixFeeListDTO, error) {
	var fees []models.FixFee
	query := s.db.Preload("Company").Preload("FeeDate").Order("company_id ASC")
	if feeDateID != 0 {
		query = query.Where("fee_date_id = ?", feeDateID)
	}
	if err := query.Find(&fees).Error; err != nil {
		return nil, errors.New("ошибка при получении списка начислений")
	}

	result := &FixFeeListDTO{Items: []FixFeeDTO{}}
	for _, fee := range fees {
		dto := s.toFixFeeDTO(fee, today)
		result.Items = append(result.Items, dto)

		switch dto.Due.Status {
		case FeeStatusCompleted:
			result.PaidCount++
		case FeeStatusOverdue:
			result.UnpaidCount++
			result.OverdueCount++
			result.OverdueSum += fee.Amount
			result.LateFeeSum += dto.LateFee
		default:
			result.UnpaidCount++
		}
	}

	return result, nil
}

// SendOverdueReminders рассылает напоминания по просроченным начислениям
// периода. Запускается вручную из кабинета, фоновых задач нет.
// Возвращает число отправленных писем.
func (s *FixFeeService) SendOverdueReminders(feeDateID uint, today time.Time) (int, error) {
	var fees []models.FixFee
	query := s.db.Preload("Company").Preload("FeeDate").Where("paid_date IS NULL")
	if feeDateID != 0 {
		query = query.Where("fee_date_id = ?", feeDateID)
	}
	if err := query.Find(&fees).Error; err != nil {
		return 0, errors.New("ошибка при получении просроченных начислений")
	}

	sent := 0
	for _, fee := range fees {
		due := DueStatus(fee.PaidDate, fee.FeeDate.DueDate, today)
		if due.Status != FeeStatusOverdue || fee.Company.Email == "" {
			continue
		}

		lateFee := LateFee(fee.Amount, due.Days, s.dailyRate)
		if err := s.email.SendFixFeeReminder(fee.Company.Email, fee.Company.DisplayName(), fee.Amount, fee.FeeDate.DueDate, due.Days, lateFee); err != nil {
			log.Printf("Ошибка отправки напоминания об оплате: %v", err)
			continue
		}
		sent++
	}

	return sent, nil
}

// CreateFeeDateDTO представляет данные для создания расчетного периода
type CreateFeeDateDTO struct {
	Label   string `json:"label" validate:"required,min=2,max=50"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// FeeDateDTO представляет ответ с данными расчетного периода
type FeeDateDTO struct {
	ID      uint   `json:"id"`
	Label   string `json:"label"`
	DueDate string `json:"due_date"`
}

// CreateFeeDate создает маркер расчетного периода
func (s *FixFeeService) CreateFeeDate(dto CreateFeeDateDTO) (*FeeDateDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationError(err)
	}

	due, err := parseOptionalDate(dto.DueDate)
	if err != nil {
		return nil, err
	}

	// Проверяем уникальность метки периода
	var existing models.FixFeeDate
	if err := s.db.Where("label = ?", dto.Label).First(&existing).Error; err == nil {
		return nil, errors.New("расчетный период с такой меткой уже существует")
	}

	feeDate := &models.FixFeeDate{Label: dto.Label, DueDate: *due}
	if err := s.db.Create(feeDate).Error; err != nil {
		return nil, errors.New("ошибка при создании расчетного периода")
	}

	return &FeeDateDTO{
		ID:      feeDate.ID,
		Label:   feeDate.Label,
		DueDate: feeDate.DueDate.Format(dateLayout),
	}, nil
}

// ListFeeDates возвращает все расчетные периоды
func (s *FixFeeService) ListFeeDates() ([]FeeDateDTO, error) {
	var feeDates []models.FixFeeDate
	if err := s.db.Order("due_date DESC").Find(&feeDates).Error; err != nil {
		return nil, errors.New("ошибка при получении расчетных периодов")
	}

	result := make([]FeeDateDTO, 0, len(feeDates))
	for _, feeDate := range feeDates {
		result = append(result, FeeDateDTO{
			ID:      feeDate.ID,
			Label:   feeDate.Label,
			DueDate: feeDate.DueDate.Format(dateLayout),
		})
	}
	return result, nil
}
