package services

import (
	"math"
	"time"
)

// IntervalStatus представляет статус интервала недоступности
type IntervalStatus string

const (
	IntervalStatusPending IntervalStatus = "PENDING" // Интервал еще не начался
	IntervalStatusActive  IntervalStatus = "ACTIVE"  // Интервал действует сегодня
	IntervalStatusEnded   IntervalStatus = "ENDED"   // Интервал завершился
)

// openEndSentinel — дата-заглушка для интервалов без даты окончания.
// В исходных данных встречались два варианта заглушки (2099 год с месяцем
// и днем даты сохранения и фиксированное 2099-12-31); оставлен единый
// фиксированный вариант для обеих сущностей.
var openEndSentinel = time.Date(2099, 12, 31, 0, 0, 0, 0, time.Local)

// DateInterval представляет интервал [StartDate, EndDate],
// обе границы включительно
type DateInterval struct {
	StartDate time.Time
	EndDate   time.Time
}

// StatusCounts содержит количество интервалов по статусам
type StatusCounts struct {
	Pending int `json:"pending"`
	Active  int `json:"active"`
	Ended   int `json:"ended"`
}

// DateOnly обнуляет время, оставляя календарную дату в той же временной зоне
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today возвращает текущую календарную дату сервера.
// Статусы всегда вычисляются от нее заново и нигде не кэшируются.
func Today() time.Time {
	return DateOnly(time.Now())
}

// daysBetween возвращает число календарных дней от from до to.
// Календарные компоненты обеих дат приводятся к полуночи UTC, поэтому
// ни временная зона значения, ни переход на летнее время не смещают
// результат.
func daysBetween(from, to time.Time) int {
	fromYear, fromMonth, fromDay := from.Date()
	toYear, toMonth, toDay := to.Date()
	fromDate := time.Date(fromYear, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(toYear, toMonth, toDay, 0, 0, 0, 0, time.UTC)
	return int(math.Round(toDate.Sub(fromDate).Hours() / 24))
}

// ClassifyInterval определяет статус интервала на дату today.
// Сравнение идет через число календарных дней, поэтому даты в разных
// временных зонах (драйвер может вернуть UTC) не смещают статус.
// Предусловие: start <= end — проверяется при сохранении записи,
// здесь повторно не валидируется.
func ClassifyInterval(start, end, today time.Time) IntervalStatus {
	switch {
	case daysBetween(today, start) > 0:
		return IntervalStatusPending
	case daysBetween(end, today) > 0:
		return IntervalStatusEnded
	default:
		return IntervalStatusActive
	}
}

// DurationDays возвращает длительность интервала в днях, включая обе границы.
// Для открытых интервалов число огромно: вызывающий код обязан проверять
// IsOpenEnded и показывать «бессрочно» вместо сырого значения.
func DurationDays(start, end time.Time) int {
	return daysBetween(start, end) + 1
}

// ResolveOpenEndDate возвращает дату окончания интервала:
// явно заданную без изменений, иначе дату-заглушку
func ResolveOpenEndDate(provided *time.Time, today time.Time) time.Time {
	if provided != nil {
		return DateOnly(*provided)
	}
	return openEndSentinel
}

// IsOpenEnded сообщает, является ли дата окончания заглушкой.
// Сравниваются календарные компоненты, а не моменты времени:
// дата из базы может прийти в UTC и оказаться раньше локальной
// полуночи заглушки.
func IsOpenEnded(end time.Time) bool {
	endYear, endMonth, endDay := end.Date()
	sentinelYear, sentinelMonth, sentinelDay := openEndSentinel.Date()
	if endYear != sentinelYear {
		return endYear > sentinelYear
	}
	if endMonth != sentinelMonth {
		return endMonth > sentinelMonth
	}
	return endDay >= sentinelDay
}

// ReleaseDates возвращает пару дат «вчера/вчера» для досрочного завершения
// интервала. Операция безусловна: применяется даже к уже завершенным
// интервалам и повторяемо дает тот же результат.
func ReleaseDates(today time.Time) (time.Time, time.Time) {
	yesterday := DateOnly(today).AddDate(0, 0, -1)
	return yesterday, yesterday
}

// CountByStatus подсчитывает интервалы по статусам на дату today
func CountByStatus(intervals []DateInterval, today time.Time) StatusCounts {
	var counts StatusCounts
	for _, interval := range intervals {
		switch ClassifyInterval(interval.StartDate, interval.EndDate, today) {
		case IntervalStatusPending:
			counts.Pending++
		case IntervalStatusActive:
			counts.Active++
		case IntervalStatusEnded:
			counts.Ended++
		}
	}
	return counts
}
