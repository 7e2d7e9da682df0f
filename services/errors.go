package services

import "errors"

// NotFoundError указывает на отсутствие запрошенной записи.
// Контроллеры отдают такие ошибки со статусом 404, остальные
// ошибки сервисов — со статусом 400.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// IsNotFound сообщает, вызвана ли ошибка отсутствием записи
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Ошибки отсутствия записей по сущностям
var (
	ErrCompanyNotFound = &NotFoundError{"компания не найдена"}
	ErrStopNotFound    = &NotFoundError{"приостановка не найдена"}
	ErrTermNotFound    = &NotFoundError{"недоступный период не найден"}
	ErrFixFeeNotFound  = &NotFoundError{"начисление не найдено"}
	ErrFeeDateNotFound = &NotFoundError{"расчетный период не найден"}
	ErrOrderNotFound   = &NotFoundError{"заявка не найдена"}
	ErrStaffNotFound   = &NotFoundError{"сотрудник не найден"}
)
