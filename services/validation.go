package services

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateLayout — формат дат во входных DTO
const dateLayout = "2006-01-02"

// translateValidationError переводит ошибки валидатора в сообщение
// для пользователя. Единая точка вместо копий в каждом сервисе.
func translateValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
		case "gt":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
		case "min":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать минимум "+e.Param()+" символов")
		case "max":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
		case "oneof":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
		case "email":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть корректным email")
		case "datetime":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть датой в формате "+dateLayout)
		default:
			errorMessages = append(errorMessages, "поле "+e.Field()+" заполнено неверно")
		}
	}
	return errors.New(strings.Join(errorMessages, "; "))
}

// parseOptionalDate разбирает дату из строки; пустая строка дает nil
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, errors.New("неверный формат даты: " + value)
	}
	parsed = DateOnly(parsed)
	return &parsed, nil
}
