package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := newWithCore("order-service", core)

	l.Info("cart_loaded", "Loaded cart", "req-1", map[string]interface{}{"items": 2})
	l.Error("db_query_failed", "Failed to query", "req-2", errors.New("boom"), nil)
	l.Error("validation_failed", "Bad input", "req-3", nil, nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "order-service", first["service"])
	assert.Equal(t, "cart_loaded", first["action"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.EqualValues(t, 2, first["items"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	_, hasErr := entries[2].ContextMap()["error"]
	assert.False(t, hasErr)
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
