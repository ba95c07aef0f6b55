package evaluation

import (
	"time"

	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// PeriodWindow считает границы текущего периода от "сейчас".
// Неделя — ISO, с понедельника 00:00:00 по воскресенье 23:59:59;
// месяц — с первого по последний календарный день. Неизвестный период — ok=false.
func PeriodWindow(now time.Time, period string) (time.Time, time.Time, bool) {
	switch period {
	case models.PeriodWeek:
		daysToMonday := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			daysToMonday = 6
		}
		start := time.Date(now.Year(), now.Month(), now.Day()-daysToMonday, 0, 0, 0, 0, now.Location())
		end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
		return start, end, true
	case models.PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// День 0 следующего месяца — последний день текущего
		end := time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

func inWindow(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
