package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/infrastructure/config"
)

func TestNewTracerProvider(t *testing.T) {
	t.Run("disabled config yields a no-op provider", func(t *testing.T) {
		cfg := config.TelemetryConfig{Enabled: false}

		tp, err := NewTracerProvider(context.Background(), cfg, zap.NewNop())

		require.NoError(t, err)
		require.NotNil(t, tp)
		assert.False(t, tp.IsEnabled())
	})

	t.Run("no-op provider still hands out tracers", func(t *testing.T) {
		cfg := config.TelemetryConfig{Enabled: false}
		tp, err := NewTracerProvider(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)

		tracer := tp.Tracer("test")

		assert.NotNil(t, tracer)
		_, span := tracer.Start(context.Background(), "op")
		span.End()
	})

	t.Run("shutdown and flush are safe when disabled", func(t *testing.T) {
		cfg := config.TelemetryConfig{Enabled: false}
		tp, err := NewTracerProvider(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)

		assert.NoError(t, tp.Shutdown(context.Background()))
		assert.NoError(t, tp.ForceFlush(context.Background()))
	})
}
