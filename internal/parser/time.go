package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Семейства шаблонов времени в порядке приоритета:
// "soat 14:30" / "в 14" / "kuni 10", затем "14:30", затем "14.30".
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:soat|в|kuni)\s*(\d{1,2})(?::(\d{2}))?`),
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),
	regexp.MustCompile(`(\d{1,2})\.(\d{2})`),
}

// ExtractTime ищет выражение времени в тексте и возвращает час и минуту.
// Кандидат вне диапазона 0-23 / 0-59 отбрасывается, после чего поиск
// продолжается со следующего семейства шаблонов, а не со следующей позиции.
func ExtractTime(text string) (hour, minute int, ok bool) {
	lower := strings.ToLower(text)

	for _, pattern := range timePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		hour, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		minute := 0
		if match[2] != "" {
			minute, err = strconv.Atoi(match[2])
			if err != nil {
				continue
			}
		}

		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			return hour, minute, true
		}
	}

	return 0, 0, false
}
