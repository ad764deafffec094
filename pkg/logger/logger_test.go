package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "gimnasio-api", Out: &buf})

	l.Named("billing").Info().Str("invoice_id", "inv-1").Msg("factura emitida")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "gimnasio-api", entry["service"])
	assert.Equal(t, "billing", entry["component"])
	assert.Equal(t, "inv-1", entry["invoice_id"])
	assert.Equal(t, "factura emitida", entry["message"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "WARN", Out: &buf})

	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí aparece")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "verboso", Out: &buf})

	l.Debug().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	l.Info().Msg("sí aparece")
	assert.NotZero(t, buf.Len())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("descartado") })
}
