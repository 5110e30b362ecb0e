package parser

import (
	"regexp"
	"sort"
	"strings"
)

// Словари узбекских и русских слов, управляющие распознаванием дат и времени.
// Обе языковые таблицы сливаются в единые карты при инициализации пакета,
// чтобы извлечение работало по одному общему словарю.

var uzbekRelativeDays = map[string]int{
	"bugun":   0,
	"ertaga":  1,
	"indinga": 2,
}

var russianRelativeDays = map[string]int{
	"сегодня":     0,
	"завтра":      1,
	"послезавтра": 2,
}

// Дни недели: понедельник = 0 ... воскресенье = 6.
var uzbekWeekdays = map[string]int{
	"dushanba":   0,
	"seshanba":   1,
	"chorshanba": 2,
	"payshanba":  3,
	"juma":       4,
	"shanba":     5,
	"yakshanba":  6,
}

var russianWeekdays = map[string]int{
	"понедельник": 0,
	"вторник":     1,
	"среда":       2,
	"четверг":     3,
	"пятница":     4,
	"суббота":     5,
	"воскресенье": 6,
}

var uzbekMonths = map[string]int{
	"yanvar": 1, "fevral": 2, "mart": 3, "aprel": 4, "may": 5, "iyun": 6,
	"iyul": 7, "avgust": 8, "sentabr": 9, "oktabr": 10, "noyabr": 11, "dekabr": 12,
}

var russianMonths = map[string]int{
	"января": 1, "февраля": 2, "марта": 3, "апреля": 4, "мая": 5, "июня": 6,
	"июля": 7, "августа": 8, "сентября": 9, "октября": 10, "ноября": 11, "декабря": 12,
}

// Фразы, однозначно указывающие на заметку.
var noteKeywords = []string{
	"eslatma", "yozib qo", "qayd et", "unutma", "eslatib qol",
	"заметка", "запиши", "записать", "не забыть", "напомни",
}

// Фразы покупок и задач: при отсутствии даты и времени склоняют к заметке.
var taskIndicators = []string{
	"olish", "sotib",
	"купить", "сделать", "список",
}

// Слитые таблицы (узбекский + русский).
var (
	relativeDays = mergeWordTables(uzbekRelativeDays, russianRelativeDays)
	weekdays     = mergeWordTables(uzbekWeekdays, russianWeekdays)
	months       = mergeWordTables(uzbekMonths, russianMonths)
)

func mergeWordTables(tables ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, table := range tables {
		for word, value := range table {
			merged[word] = value
		}
	}
	return merged
}

// alternation собирает ключи карты в альтернативу для регулярного выражения.
// Более длинные слова идут первыми, чтобы "послезавтра" не срезалось до
// вхождения "завтра".
func alternation(table map[string]int) string {
	words := make([]string, 0, len(table))
	for word := range table {
		words = append(words, regexp.QuoteMeta(word))
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return strings.Join(words, "|")
}
