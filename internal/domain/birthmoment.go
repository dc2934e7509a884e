package domain

import (
	"strconv"
	"strings"
	"time"
)

// Момент рождения всегда выражается с фиксированным смещением +05:30 (IST),
// независимо от фактического места рождения - legacy-поведение, сохранено намеренно.
var birthZone = time.FixedZone("IST", 5*3600+30*60)

// ParseTimeOfBirth разбирает время рождения "HH:MM"
func ParseTimeOfBirth(timeOfBirth string) (hour, minute int, err error) {
	parts := strings.Split(timeOfBirth, ":")
	if len(parts) != 2 {
		return 0, 0, NewValidationError("time_of_birth", `must be in "HH:MM" format`)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, NewValidationError("time_of_birth", "hours must be between 00 and 23")
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, NewValidationError("time_of_birth", "minutes must be between 00 and 59")
	}

	return hour, minute, nil
}

// BirthMoment собирает дату и локальное время рождения в единый момент
// вида "2006-01-02T15:04:05+05:30". Секунды всегда нулевые.
// Чистая функция; именно эта строка (в percent-encoded виде) уходит провайдеру.
func BirthMoment(dateOfBirth time.Time, timeOfBirth string) (string, error) {
	hour, minute, err := ParseTimeOfBirth(timeOfBirth)
	if err != nil {
		return "", err
	}

	moment := time.Date(
		dateOfBirth.Year(), dateOfBirth.Month(), dateOfBirth.Day(),
		hour, minute, 0, 0,
		birthZone,
	)

	return moment.Format("2006-01-02T15:04:05-07:00"), nil
}
