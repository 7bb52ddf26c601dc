package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/GregCodi/WarehousePRO/pkg/config"
)

func TestSetup_SinEndpointNoRegistraProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	tp, shutdown, err := Setup(context.Background(), config.TracingConfig{ServiceName: "wh"})
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_ConEndpointRegistraProviderGlobal(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), config.TracingConfig{
		Endpoint:    "http://127.0.0.1:4318",
		ServiceName: "warehouse-pro-test",
	})
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())

	// sin spans pendientes el cierre no necesita alcanzar el collector
	assert.NoError(t, shutdown(context.Background()))
}
