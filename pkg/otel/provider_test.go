package otel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUseGRPC(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "")

	require.False(t, useGRPC("TRACES"))

	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	require.True(t, useGRPC("TRACES"))

	// signal-specific setting wins over the shared one
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "http/protobuf")
	require.False(t, useGRPC("TRACES"))

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "GRPC")
	require.True(t, useGRPC("TRACES"))
}
