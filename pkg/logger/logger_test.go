package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/pkg/logger"
)

// ─────────────────────────────────────────────
// Logger
// ─────────────────────────────────────────────

func TestNew_IncluyeCampoService(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "nexus-api",
		Out:     &buf,
	})

	log.Info().Msg("arranque")

	salida := buf.String()
	require.NotEmpty(t, salida)
	assert.Contains(t, salida, `"service":"nexus-api"`)
	assert.Contains(t, salida, "arranque")
}

func TestNew_FiltraSegunNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:   "production",
		Level: "warn",
		Out:   &buf,
	})

	log.Info().Msg("descartado")
	log.Warn().Msg("visible")

	salida := buf.String()
	assert.NotContains(t, salida, "descartado")
	assert.Contains(t, salida, "visible")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:   "production",
		Level: "verboso",
		Out:   &buf,
	})

	log.Debug().Msg("descartado")
	log.Info().Msg("visible")

	salida := buf.String()
	assert.NotContains(t, salida, "descartado")
	assert.Contains(t, salida, "visible")
}
