package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogging_Levels(t *testing.T) {
	defer SetupLogging("info", "console")

	SetupLogging("trace", "json")
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	SetupLogging("warn", "console")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetupLogging("unknown", "console")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
