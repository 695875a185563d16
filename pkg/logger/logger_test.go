package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelPorDefectoSegunEntorno(t *testing.T) {
	dev := New(Config{Env: "development"})
	assert.Equal(t, zerolog.DebugLevel, dev.Zerolog().GetLevel())

	prod := New(Config{Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, prod.Zerolog().GetLevel())
}

func TestNew_NivelExplicitoGana(t *testing.T) {
	l := New(Config{Env: "development", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}

func TestNop_DescartaTodo(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, Nop().Zerolog().GetLevel())
}
