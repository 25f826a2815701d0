package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name        string
		logLevel    string
		environment string
		want        zerolog.Level
	}{
		{"development default", "", "development", zerolog.DebugLevel},
		{"production default", "", "production", zerolog.InfoLevel},
		{"explicit level wins", "warn", "development", zerolog.WarnLevel},
		{"invalid level", "loud", "production", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("PRICECOMPARE_ENVIRONMENT", tt.environment)
			assert.Equal(t, tt.want, getLogLevel())
		})
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf).WithField("store", "Myntra")

	log.Warn().Str("query", "kurti").Msg("Fetch failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Myntra", entry["store"])
	assert.Equal(t, "kurti", entry["query"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Fetch failed", entry["message"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error().Msg("discarded")
	})
}

func TestComponentLoggers(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Init()

	for _, l := range []*Logger{ForStore("Amazon"), ForAggregator(), ForPublisher(), ForCache(), ForServer()} {
		assert.NotNil(t, l)
	}
	assert.False(t, IsDebugEnabled())
}
