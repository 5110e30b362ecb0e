package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventTomorrowWithTime(t *testing.T) {
	msg := Parse("Ertaga soat 14:00 da doktor", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, "doktor", msg.Title)
	assert.Equal(t, time.Date(2024, 7, 11, 14, 0, 0, 0, time.UTC), msg.StartTime)
	assert.Equal(t, "Ertaga soat 14:00 da doktor", msg.Description)
}

func TestParseEventRussian(t *testing.T) {
	msg := Parse("Завтра в 15:30 встреча", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, "встреча", msg.Title)
	assert.Equal(t, time.Date(2024, 7, 11, 15, 30, 0, 0, time.UTC), msg.StartTime)
}

func TestParseShoppingListBecomesNote(t *testing.T) {
	msg := Parse("Non va sut sotib olish", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.Equal(t, "Non va sut sotib olish", msg.Title)
	assert.Equal(t, "Non va sut sotib olish", msg.Content)
}

func TestParseExplicitNoteKeyword(t *testing.T) {
	msg := Parse("Eslatma: kitob o'qish", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.Equal(t, "kitob o'qish", msg.Title)
	assert.Equal(t, "kitob o'qish", msg.Content)

	msg = Parse("Заметка: прочитать книгу", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.Equal(t, "прочитать книгу", msg.Title)
	assert.Equal(t, "прочитать книгу", msg.Content)
}

func TestParseWeekdayRollsToNextWeek(t *testing.T) {
	// Опорный момент — понедельник 8 июля 2024; "dushanba" означает
	// следующий понедельник, а не сегодняшний день.
	monday := time.Date(2024, 7, 8, 9, 0, 0, 0, time.UTC)

	msg := Parse("Dushanba kuni 10 da yig'ilish", monday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, "yig'ilish", msg.Title)
	assert.Equal(t, time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC), msg.StartTime)
}

func TestParseDayMonthRollsYearForward(t *testing.T) {
	// 28 декабря 2024: "25 dekabr" уже прошло, событие уходит в 2025.
	lateDecember := time.Date(2024, 12, 28, 9, 0, 0, 0, time.UTC)

	msg := Parse("25 dekabr soat 18:00 da bozor", lateDecember)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, "bozor", msg.Title)
	assert.Equal(t, time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC), msg.StartTime)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Nil(t, Parse("", wednesday))
	assert.Nil(t, Parse("   ", wednesday))
	assert.Nil(t, Parse("\n\t  \n", wednesday))
}

func TestParseTotality(t *testing.T) {
	// Любой непустой текст дает результат.
	inputs := []string{
		"salom",
		"как дела",
		"a",
		"?",
		"1234567890",
		"Ertaga soat 99 da nimadir", // невалидное время
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			assert.NotNil(t, Parse(text, wednesday))
		})
	}
}

func TestParseEventFallsBackToNote(t *testing.T) {
	// Кандидат в события без извлекаемых даты и времени становится
	// заметкой из исходного текста: сообщение не теряется.
	msg := Parse("просто мысли вслух", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.Equal(t, "просто мысли вслух", msg.Title)
	assert.Equal(t, "просто мысли вслух", msg.Content)
}

func TestParseNoteKeywordWinsOverDateTime(t *testing.T) {
	msg := Parse("Запиши: завтра в 14:00 оплатить счет", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.True(t, msg.StartTime.IsZero())
	assert.Contains(t, msg.Content, "завтра")
}

func TestParseDefaultTime(t *testing.T) {
	// Дата без времени — событие в 09:00.
	msg := Parse("ertaga doktor", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, 9, msg.StartTime.Hour())
	assert.Equal(t, 0, msg.StartTime.Minute())
	assert.Equal(t, 11, msg.StartTime.Day())
}

func TestParseDefaultDate(t *testing.T) {
	// Время без даты — событие сегодня.
	msg := Parse("в 15:30 встреча", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, time.Date(2024, 7, 10, 15, 30, 0, 0, time.UTC), msg.StartTime)
	assert.Equal(t, "встреча", msg.Title)
}

func TestParseStartTimeSecondsZeroed(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 34, 56, 789, time.UTC)
	msg := Parse("bugun soat 18 da kino", now)
	require.NotNil(t, msg)
	assert.Equal(t, 0, msg.StartTime.Second())
	assert.Equal(t, 0, msg.StartTime.Nanosecond())
}

func TestParseTitleTruncation(t *testing.T) {
	long := strings.Repeat("а", 250)
	msg := Parse(long, wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentNote, msg.Intent)
	assert.Len(t, []rune(msg.Title), 100)
	assert.Equal(t, long, msg.Content)

	msg = Parse("Заметка: "+long, wednesday)
	require.NotNil(t, msg)
	assert.Len(t, []rune(msg.Title), 100)
}

func TestParseEmptyTitleGetsPlaceholder(t *testing.T) {
	msg := Parse("ertaga soat 14:00", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, DefaultEventTitle, msg.Title)
}

func TestParseMixedLanguages(t *testing.T) {
	msg := Parse("завтра soat 10 da uchrashuv", wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, IntentCalendar, msg.Intent)
	assert.Equal(t, "uchrashuv", msg.Title)
	assert.Equal(t, time.Date(2024, 7, 11, 10, 0, 0, 0, time.UTC), msg.StartTime)
}

func TestParseDescriptionKeepsRawText(t *testing.T) {
	raw := "  Ertaga soat 14:00 da doktor  "
	msg := Parse(raw, wednesday)
	require.NotNil(t, msg)
	assert.Equal(t, strings.TrimSpace(raw), msg.Description)
}

func TestCleanEventTitleIdempotent(t *testing.T) {
	inputs := []string{
		"Ertaga soat 14:00 da doktor",
		"Завтра в 15:30 встреча",
		"25 dekabr soat 18:00 da bozor",
		"Dushanba kuni 10 da yig'ilish",
		"понедельник в 10 собрание",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			once := cleanEventTitle(text)
			twice := cleanEventTitle(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestStripNoteKeywordsIdempotent(t *testing.T) {
	once := stripNoteKeywords("Заметка: купить хлеб")
	twice := stripNoteKeywords(once)
	assert.Equal(t, once, twice)
}

func TestParseConcurrentUse(t *testing.T) {
	// Парсер не держит состояния и безопасен при параллельных вызовах.
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				Parse("Ertaga soat 14:00 da doktor", wednesday)
				Parse("Заметка: купить хлеб", wednesday)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
