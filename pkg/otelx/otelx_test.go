package otelx_test

import (
	"context"
	"testing"

	"github.com/amitmore-007/Recipe-Generator/pkg/otelx"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otelx.Setup(context.Background(), otelx.Config{ServiceName: "test"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported because no spans are started.
	shutdown, err := otelx.Setup(context.Background(), otelx.Config{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test",
		Version:     "dev",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
