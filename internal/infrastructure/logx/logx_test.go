package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContextIDs(t *testing.T) {
	ctx := WithTraceID(WithRequestID(context.Background(), "req-1"), "trace-1")
	require.Equal(t, "req-1", RequestID(ctx))
	require.Equal(t, "trace-1", TraceID(ctx))
	require.Empty(t, RequestID(context.Background()))
	require.NotNil(t, WithFields(ctx))
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	require.NoError(t, SetLevel("DEBUG"))
	require.True(t, L().Core().Enabled(zap.DebugLevel))
	require.NoError(t, SetLevel(""))
	require.True(t, L().Core().Enabled(zap.DebugLevel))
	require.Error(t, SetLevel("loud"))
}
