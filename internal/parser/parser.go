package parser

import (
	"regexp"
	"strings"
	"time"
)

// DefaultEventTitle подставляется, когда после вычистки даты и времени от
// текста события ничего не остаётся.
const DefaultEventTitle = "Voqea / Событие"

// maxTitleLen ограничивает длину заголовка в символах.
const maxTitleLen = 100

// defaultEventHour и defaultEventMinute — время по умолчанию (09:00), когда
// в сообщении указана дата, но не указано время.
const (
	defaultEventHour   = 9
	defaultEventMinute = 0
)

// ParsedMessage — разобранное сообщение пользователя.
// Для заметки заполнены Title и Content, для события — Title, StartTime и
// Description (исходный текст без изменений).
type ParsedMessage struct {
	Intent      Intent
	Title       string
	Content     string
	StartTime   time.Time
	Description string
}

var (
	// Шаблоны, вычищаемые из заголовка события.
	keywordTimeCleaner = regexp.MustCompile(`(?i)(?:soat|в|kuni)\s*\d{1,2}(?::\d{2})?`)
	colonTimeCleaner   = regexp.MustCompile(`\d{1,2}:\d{2}`)
	dotTimeCleaner     = regexp.MustCompile(`\d{1,2}\.\d{2}`)
	dayMonthCleaner    = regexp.MustCompile(`(?i)\d{1,2}\s*(?:` + alternation(months) + `)`)

	whitespaceCollapser = regexp.MustCompile(`\s+`)

	// Ключевые слова заметок с необязательным двоеточием после них.
	noteKeywordCleaners = buildNoteKeywordCleaners()

	// Одиночные слова, выбрасываемые из заголовка события: относительные
	// дни, дни недели и голые предлоги "в"/"da"/"na".
	strippedWords = buildStrippedWords()
)

func buildNoteKeywordCleaners() []*regexp.Regexp {
	cleaners := make([]*regexp.Regexp, 0, len(noteKeywords))
	for _, keyword := range noteKeywords {
		cleaners = append(cleaners, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(keyword)+`:?\s*`))
	}
	return cleaners
}

func buildStrippedWords() map[string]struct{} {
	words := make(map[string]struct{})
	for word := range relativeDays {
		words[word] = struct{}{}
	}
	for word := range weekdays {
		words[word] = struct{}{}
	}
	for _, preposition := range []string{"da", "в", "na"} {
		words[preposition] = struct{}{}
	}
	return words
}

// Parse разбирает сообщение и возвращает структурированное намерение.
// now — опорный момент для разрешения относительных дат; вызывающая сторона
// передаёт текущее время в нужном часовом поясе. Возвращает nil только для
// пустого (после обрезки пробелов) текста.
func Parse(text string, now time.Time) *ParsedMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	hour, minute, hasTime := ExtractTime(text)
	date, hasDate := ExtractDate(text, now)

	if ClassifyIntent(text, hasDate, hasTime) == IntentNote {
		cleaned := stripNoteKeywords(text)
		return &ParsedMessage{
			Intent:  IntentNote,
			Title:   truncate(cleaned, maxTitleLen),
			Content: cleaned,
		}
	}

	if !hasDate && !hasTime {
		// Кандидат в события без единого временного сигнала
		// деградирует в заметку: сообщение не должно теряться.
		return &ParsedMessage{
			Intent:  IntentNote,
			Title:   truncate(text, maxTitleLen),
			Content: text,
		}
	}

	if !hasDate {
		date = now
	}
	if !hasTime {
		hour, minute = defaultEventHour, defaultEventMinute
	}

	startTime := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())

	title := cleanEventTitle(text)
	if title == "" {
		title = DefaultEventTitle
	}

	return &ParsedMessage{
		Intent:      IntentCalendar,
		Title:       title,
		StartTime:   startTime,
		Description: text,
	}
}

// stripNoteKeywords убирает из текста ключевые слова заметок вместе с
// двоеточием после них и схлопывает оставшиеся пробелы.
func stripNoteKeywords(text string) string {
	cleaned := text
	for _, cleaner := range noteKeywordCleaners {
		cleaned = cleaner.ReplaceAllString(cleaned, "")
	}
	return collapseWhitespace(cleaned)
}

// cleanEventTitle вычищает из текста все распознаваемые шаблоны даты и
// времени, оставляя человекочитаемый заголовок. Повторный прогон по уже
// очищенному заголовку ничего не меняет.
func cleanEventTitle(text string) string {
	title := keywordTimeCleaner.ReplaceAllString(text, " ")
	title = colonTimeCleaner.ReplaceAllString(title, " ")
	title = dotTimeCleaner.ReplaceAllString(title, " ")
	title = dayMonthCleaner.ReplaceAllString(title, " ")

	fields := strings.Fields(title)
	kept := fields[:0]
	for _, field := range fields {
		word := strings.ToLower(strings.Trim(field, ",.:;!?"))
		if _, drop := strippedWords[word]; drop {
			continue
		}
		kept = append(kept, field)
	}

	return collapseWhitespace(strings.Join(kept, " "))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceCollapser.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
