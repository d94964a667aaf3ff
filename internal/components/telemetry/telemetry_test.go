package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	inner := NewTestAPI(t)
	scoped := NewScopedAPI("dramexchange", inner)

	scoped.ReportBroken("client.fetch", "boom")
	scoped.ReportInfo("log directory created")
	scoped.ReportCount("rows", 3)

	broken := inner.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "dramexchange: client.fetch", broken[0].ID)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	info := inner.Reports("info")
	require.Len(t, info, 1)
	require.Equal(t, "dramexchange: log directory created", info[0].ID)

	require.Len(t, inner.Reports(""), 3)
}

func TestSetupOtelWithoutEndpoints(t *testing.T) {
	o, err := SetupOtel(context.Background(), "test:telemetry", OtlpConfig{})
	require.NoError(t, err)
	require.Nil(t, o.TracerProvider)
	require.Nil(t, o.MeterProvider)
	require.NoError(t, o.Shutdown(context.Background()))
}
