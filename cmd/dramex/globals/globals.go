package globals

import (
	"context"

	"dramex-logger/internal/components/telemetry"
	"dramex-logger/internal/snapshotlog"
)

type keyType int

const key keyType = 0

type Value struct {
	Config Config
	Tel    telemetry.API
	Log    snapshotlog.Log
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key).(*Value)
}
