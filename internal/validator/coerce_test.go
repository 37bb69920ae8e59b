package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	assert.Equal(t, 150.5, Float("150.50"))
	assert.Equal(t, 150.5, Float("  150.50  "))
	assert.Equal(t, 0.0, Float("not a number"))
	assert.Equal(t, 0.0, Float(""))
	assert.Equal(t, -20.0, Float("-20"))
}

func TestInt(t *testing.T) {
	assert.Equal(t, 90, Int("90"))
	assert.Equal(t, 0, Int("90.5"))
	assert.Equal(t, 0, Int(""))
	assert.Equal(t, -3, Int("-3"))
}

func TestDate(t *testing.T) {
	got := Date("2026-03-15")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, Date(""))
	assert.Nil(t, Date("15/03/2026"))
	assert.Nil(t, Date("2026-13-40"))
}
