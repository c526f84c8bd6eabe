package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-01-30")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("30-01-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	_, ok := IsValidClock("09:00")
	assert.True(t, ok)

	_, ok = IsValidClock("23:59")
	assert.True(t, ok)

	_, ok = IsValidClock("24:00")
	assert.False(t, ok)

	_, ok = IsValidClock("9am")
	assert.False(t, ok)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0194f4a2-91a3-7cde-8f12-3456789abcde"))
	assert.True(t, IsValidUUID("123E4567-E89B-42D3-A456-426614174000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "leave_type", Message: "unknown leave type"},
	}

	assert.Equal(t, "start_date: start_date is required; leave_type: unknown leave type", errs.Error())
	assert.Equal(t, map[string]string{
		"start_date": "start_date is required",
		"leave_type": "unknown leave type",
	}, errs.ToMap())
}
