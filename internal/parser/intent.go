package parser

import "strings"

// Intent обозначает назначение сообщения: событие календаря или заметка.
type Intent string

const (
	IntentCalendar Intent = "calendar"
	IntentNote     Intent = "note"
)

// ClassifyIntent решает, заметка это или событие. Явное ключевое слово
// заметки всегда побеждает, даже если в тексте есть дата или время. Без
// даты и времени сообщение о покупках или задачах тоже считается заметкой;
// всё остальное — кандидат в события (Parse вернёт его обратно в заметку,
// если дата и время так и не извлекутся).
func ClassifyIntent(text string, hasDate, hasTime bool) Intent {
	lower := strings.ToLower(text)

	for _, keyword := range noteKeywords {
		if strings.Contains(lower, keyword) {
			return IntentNote
		}
	}

	if !hasDate && !hasTime {
		for _, indicator := range taskIndicators {
			if strings.Contains(lower, indicator) {
				return IntentNote
			}
		}
	}

	return IntentCalendar
}
