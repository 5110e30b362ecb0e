package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Опорная среда: 10 июля 2024 года.
var wednesday = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func TestExtractDateRelativeDays(t *testing.T) {
	tests := []struct {
		text string
		days int
	}{
		{"bugun uchrashuv", 0},
		{"сегодня встреча", 0},
		{"ertaga doktor", 1},
		{"завтра к врачу", 1},
		{"indinga bozor", 2},
		{"послезавтра экзамен", 2},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			date, ok := ExtractDate(tt.text, wednesday)
			require.True(t, ok)
			assert.Equal(t, wednesday.AddDate(0, 0, tt.days).Day(), date.Day())
		})
	}
}

func TestExtractDateEmbeddedRelativeWord(t *testing.T) {
	// "послезавтра" содержит "завтра"; выигрывает самое левое (и более
	// длинное) вхождение, а не случайный порядок обхода словаря.
	date, ok := ExtractDate("послезавтра сдача", wednesday)
	require.True(t, ok)
	assert.Equal(t, 12, date.Day())
}

func TestExtractDateLeftmostWins(t *testing.T) {
	date, ok := ExtractDate("сегодня, а не завтра", wednesday)
	require.True(t, ok)
	assert.Equal(t, 10, date.Day())

	date, ok = ExtractDate("завтра, а не сегодня", wednesday)
	require.True(t, ok)
	assert.Equal(t, 11, date.Day())
}

func TestExtractDateWeekdays(t *testing.T) {
	tests := []struct {
		text string
		day  int // день месяца в июле 2024, отсчёт от среды 10-го
	}{
		{"dushanba yig'ilish", 15},
		{"понедельник собрание", 15},
		{"seshanba", 16},
		{"вторник", 16},
		{"payshanba", 11},
		{"четверг", 11},
		{"juma namoz", 12},
		{"пятница отчет", 12},
		{"shanba dam olish", 13},
		{"суббота", 13},
		{"yakshanba", 14},
		{"воскресенье", 14},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			date, ok := ExtractDate(tt.text, wednesday)
			require.True(t, ok)
			assert.Equal(t, tt.day, date.Day())
			assert.Equal(t, time.July, date.Month())
		})
	}
}

func TestExtractDateWeekdayNeverToday(t *testing.T) {
	// Голое название сегодняшнего дня недели означает следующую неделю.
	date, ok := ExtractDate("chorshanba uchrashuv", wednesday)
	require.True(t, ok)
	assert.Equal(t, 17, date.Day())

	date, ok = ExtractDate("среда планерка", wednesday)
	require.True(t, ok)
	assert.Equal(t, 17, date.Day())

	// Результат всегда на 1-7 дней впереди опорного момента.
	for word := range weekdays {
		date, ok := ExtractDate(word, wednesday)
		require.True(t, ok, word)
		ahead := int(date.Sub(wednesday).Hours() / 24)
		assert.GreaterOrEqual(t, ahead, 1, word)
		assert.LessOrEqual(t, ahead, 7, word)
	}
}

func TestExtractDateDayMonth(t *testing.T) {
	tests := []struct {
		text  string
		day   int
		month time.Month
		year  int
	}{
		{"25 dekabr bozor", 25, time.December, 2024},
		{"25 декабря рынок", 25, time.December, 2024},
		{"1 sentabr maktab", 1, time.September, 2024},
		{"8 марта", 8, time.March, 2025},   // уже прошло, переносится на год вперед
		{"9 июля", 9, time.July, 2025},     // тот же месяц, день раньше
		{"10 июля", 10, time.July, 2024},   // тот же месяц, тот же день — не переносится
		{"11 iyul uchrashuv", 11, time.July, 2024},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			date, ok := ExtractDate(tt.text, wednesday)
			require.True(t, ok)
			assert.Equal(t, tt.day, date.Day())
			assert.Equal(t, tt.month, date.Month())
			assert.Equal(t, tt.year, date.Year())
		})
	}
}

func TestExtractDateDayBounds(t *testing.T) {
	_, ok := ExtractDate("0 мая", wednesday)
	assert.False(t, ok)

	_, ok = ExtractDate("32 мая", wednesday)
	assert.False(t, ok)

	date, ok := ExtractDate("31 avgust", wednesday)
	require.True(t, ok)
	assert.Equal(t, 31, date.Day())
}

func TestExtractDateResolutionOrder(t *testing.T) {
	// Относительное слово побеждает день недели и "день + месяц".
	date, ok := ExtractDate("ertaga, а не 25 dekabr va dushanba emas", wednesday)
	require.True(t, ok)
	assert.Equal(t, 11, date.Day())
	assert.Equal(t, time.July, date.Month())

	// День недели побеждает "день + месяц".
	date, ok = ExtractDate("dushanba yoki 25 dekabr", wednesday)
	require.True(t, ok)
	assert.Equal(t, 15, date.Day())
	assert.Equal(t, time.July, date.Month())
}

func TestExtractDateNoMatch(t *testing.T) {
	_, ok := ExtractDate("просто текст без даты", wednesday)
	assert.False(t, ok)

	_, ok = ExtractDate("non va sut olish", wednesday)
	assert.False(t, ok)
}

func TestExtractDateKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)

	now := time.Date(2024, 7, 10, 12, 0, 0, 0, loc)
	date, ok := ExtractDate("25 dekabr", now)
	require.True(t, ok)
	assert.Equal(t, loc, date.Location())
}
