package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-companion/internal/telemetry"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{ServiceName: "test"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpoint(t *testing.T) {
	// non-routable, nothing is exported
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
