package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCooldownLabel(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{65, "1:05"},
		{5, "5s"},
		{0, "0s"},
		{-3, "0s"},
		{59, "59s"},
		{60, "1:00"},
		{600, "10:00"},
		{3725, "62:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CooldownLabel(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestDailyLimitLabel(t *testing.T) {
	assert.Equal(t, "daily limit (3/3)", DailyLimitLabel(3, 3))
	assert.Equal(t, "daily limit (0/10)", DailyLimitLabel(0, 10))
}
