// utils/validation_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+447700900123"))
	assert.True(t, ValidatePhone("+44 7700 900123"))
	assert.True(t, ValidatePhone("(020) 7946-0958"))
	assert.True(t, ValidatePhone("07700 900123"))

	assert.False(t, ValidatePhone("not a number"))
	assert.False(t, ValidatePhone(""))
	assert.False(t, ValidatePhone("+0123"))
}

func TestValidateTimeOfDay(t *testing.T) {
	assert.True(t, ValidateTimeOfDay("00:00"))
	assert.True(t, ValidateTimeOfDay("09:30"))
	assert.True(t, ValidateTimeOfDay("23:59"))

	assert.False(t, ValidateTimeOfDay("24:00"))
	assert.False(t, ValidateTimeOfDay("12:60"))
	assert.False(t, ValidateTimeOfDay("9:30"))
	assert.False(t, ValidateTimeOfDay("midnight"))
}

func TestValidateShortCode(t *testing.T) {
	assert.True(t, ValidateShortCode("summer-quiz"))
	assert.True(t, ValidateShortCode("abc"))
	assert.True(t, ValidateShortCode("Event_2026"))

	assert.False(t, ValidateShortCode("ab"))                 // too short
	assert.False(t, ValidateShortCode("has spaces"))
	assert.False(t, ValidateShortCode("slash/code"))
}

func TestGenerateShortCode(t *testing.T) {
	code := GenerateShortCode(7)
	assert.Len(t, code, 7)
	assert.True(t, ValidateShortCode(code))

	// Confusable characters never appear.
	for _, c := range code {
		assert.NotContains(t, "0O1lI", string(c))
	}
}
