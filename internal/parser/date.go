package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Шаблон "25 dekabr" / "25 декабря": день из 1-2 цифр и название месяца
// из любого языкового словаря.
var dayMonthPattern = regexp.MustCompile(`(\d{1,2})\s*(` + alternation(months) + `)`)

// ExtractDate ищет выражение даты в тексте относительно опорного момента now.
// Категории проверяются по порядку: относительные слова (сегодня, завтра),
// дни недели, затем "день + месяц". При нескольких словах одной категории
// выигрывает самое левое вхождение в тексте.
func ExtractDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	if offset, found := leftmostWord(lower, relativeDays); found {
		return now.AddDate(0, 0, offset), true
	}

	if target, found := leftmostWord(lower, weekdays); found {
		current := mondayBasedWeekday(now)
		daysAhead := (target - current + 7) % 7
		if daysAhead == 0 {
			// Голое название дня недели означает следующее его
			// наступление, никогда не сегодня.
			daysAhead = 7
		}
		return now.AddDate(0, 0, daysAhead), true
	}

	if match := dayMonthPattern.FindStringSubmatch(lower); match != nil {
		day, err := strconv.Atoi(match[1])
		if err == nil && day >= 1 && day <= 31 {
			month := months[match[2]]
			year := now.Year()
			if month < int(now.Month()) || (month == int(now.Month()) && day < now.Day()) {
				year++
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
		}
	}

	return time.Time{}, false
}

// leftmostWord возвращает значение слова из таблицы, которое встречается в
// тексте раньше остальных. При совпадении позиций выигрывает более длинное
// слово, чтобы "послезавтра" побеждало вложенное "завтра".
func leftmostWord(lower string, table map[string]int) (int, bool) {
	bestIndex := -1
	bestLen := 0
	bestValue := 0
	for word, value := range table {
		index := strings.Index(lower, word)
		if index < 0 {
			continue
		}
		if bestIndex < 0 || index < bestIndex || (index == bestIndex && len(word) > bestLen) {
			bestIndex = index
			bestLen = len(word)
			bestValue = value
		}
	}
	return bestValue, bestIndex >= 0
}

// mondayBasedWeekday переводит time.Weekday (воскресенье = 0) в порядок
// словаря: понедельник = 0 ... воскресенье = 6.
func mondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
