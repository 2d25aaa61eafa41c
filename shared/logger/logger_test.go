package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	prevLevel, prevLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})
}

func TestInit(t *testing.T) {
	restore(t)

	buf := &bytes.Buffer{}
	require.NoError(t, Init(buf, "warn", false))

	log.Info().Msg("hidden")
	log.Warn().Str("room", "ABC123").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "ABC123", line["room"])
	assert.Equal(t, "warn", line["level"])

	assert.Error(t, Init(buf, "loud", false))
}

func TestInit_EmptyLevelDefaultsToInfo(t *testing.T) {
	restore(t)

	buf := &bytes.Buffer{}
	require.NoError(t, Init(buf, "", true))
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
