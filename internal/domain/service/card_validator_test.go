package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow(t *testing.T, v *CardValidator, value string) {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", value, err)
	}
	v.now = func() time.Time { return parsed }
}

func TestValidateNumberLength(t *testing.T) {
	v := NewCardValidator(false)

	assert.NoError(t, v.ValidateNumber("4242424242424242"))
	assert.NoError(t, v.ValidateNumber("4242 4242 4242 4242"))
	assert.NoError(t, v.ValidateNumber("4000056655665556111")) // 19 digits
	assert.Error(t, v.ValidateNumber("424242424242"))          // 12 digits
	assert.Error(t, v.ValidateNumber("42424242424242424242"))  // 20 digits
	assert.Error(t, v.ValidateNumber("4242-4242-4242-4242"))
	assert.Error(t, v.ValidateNumber(""))
}

func TestLuhnPolicyToggle(t *testing.T) {
	// 4242...42 passes Luhn, 4242...41 does not.
	relaxed := NewCardValidator(false)
	assert.NoError(t, relaxed.ValidateNumber("4242424242424241"))

	strict := NewCardValidator(true)
	assert.Error(t, strict.ValidateNumber("4242424242424241"))
	assert.NoError(t, strict.ValidateNumber("4242424242424242"))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, LuhnValid("4242424242424242"))
	assert.True(t, LuhnValid("4111111111111111"))
	assert.False(t, LuhnValid("4242424242424241"))
}

func TestValidateExpiry(t *testing.T) {
	v := NewCardValidator(false)
	fixedNow(t, v, "2025-06-15")

	assert.NoError(t, v.ValidateExpiry("12/30"))
	assert.NoError(t, v.ValidateExpiry("06/25")) // current month is still valid
	assert.Error(t, v.ValidateExpiry("05/25"))
	assert.Error(t, v.ValidateExpiry("12/24"))
	assert.Error(t, v.ValidateExpiry("13/30"))
	assert.Error(t, v.ValidateExpiry("00/30"))
	assert.Error(t, v.ValidateExpiry("1/30"))
	assert.Error(t, v.ValidateExpiry("12-30"))
	assert.Error(t, v.ValidateExpiry("12/3a"))
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "4242", LastFour("4242 4242 4242 4242"))
	assert.Equal(t, "5556", LastFour("4000056655665556"))
}
