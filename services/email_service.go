package services

import (
	"fmt"
	"time"

	"adminProject/config"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendSuspensionNotice отправляет подрядчику уведомление о приостановке.
// Вызывается только для приостановок с видимой причиной.
func (s *EmailService) SendSuspensionNotice(to, companyName string, startDate, endDate time.Time, reason string) error {
	subject := "Уведомление о приостановке размещения"

	endLine := endDate.Format("02.01.2006")
	if IsOpenEnded(endDate) {
		endLine = "бессрочно"
	}

	body := fmt.Sprintf(`
		<h2>Уведомление о приостановке</h2>
		<p>Компания: %s</p>
		<p>Начало: %s</p>
		<p>Окончание: %s</p>
		<p>Причина: %s</p>
	`, companyName, startDate.Format("02.01.2006"), endLine, reason)

	return s.SendEmail(to, subject, body)
}

// SendFixFeeReminder отправляет напоминание о просроченной абонентской плате
func (s *EmailService) SendFixFeeReminder(to, companyName string, amount int64, dueDate time.Time, overdueDays int, lateFee int64) error {
	subject := "Напоминание об оплате абонентской платы"
	body := fmt.Sprintf(`
		<h2>Напоминание об оплате</h2>
		<p>Компания: %s</p>
		<p>Сумма: %d</p>
		<p>Срок оплаты: %s</p>
		<p>Дней просрочки: %d</p>
		<p>Начисленная пеня: %d</p>
	`, companyName, amount, dueDate.Format("02.01.2006"), overdueDays, lateFee)

	return s.SendEmail(to, subject, body)
}
