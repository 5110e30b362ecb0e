package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconMergedTables(t *testing.T) {
	assert.Len(t, relativeDays, len(uzbekRelativeDays)+len(russianRelativeDays))
	assert.Len(t, weekdays, len(uzbekWeekdays)+len(russianWeekdays))
	assert.Len(t, months, len(uzbekMonths)+len(russianMonths))
}

func TestLexiconDayCategoriesDisjoint(t *testing.T) {
	// Относительные слова и дни недели — непересекающиеся множества.
	for word := range relativeDays {
		_, clash := weekdays[word]
		assert.False(t, clash, word)
	}
}

func TestLexiconMonthOrdinals(t *testing.T) {
	for word, month := range months {
		assert.GreaterOrEqual(t, month, 1, word)
		assert.LessOrEqual(t, month, 12, word)
	}

	assert.Equal(t, 1, months["yanvar"])
	assert.Equal(t, 1, months["января"])
	assert.Equal(t, 12, months["dekabr"])
	assert.Equal(t, 12, months["декабря"])
}

func TestLexiconWeekdayOrdinals(t *testing.T) {
	// Понедельник = 0 ... воскресенье = 6, в обоих языках одинаково.
	assert.Equal(t, weekdays["dushanba"], weekdays["понедельник"])
	assert.Equal(t, weekdays["yakshanba"], weekdays["воскресенье"])
	for word, day := range weekdays {
		assert.GreaterOrEqual(t, day, 0, word)
		assert.LessOrEqual(t, day, 6, word)
	}
}
