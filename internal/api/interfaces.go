package api

import (
	"context"

	"github.com/nikmy/gameprefs/pkg/ecs"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Host runs fn on the update loop and waits for it. *ecs.App implements it.
type Host interface {
	Call(ctx context.Context, fn func(ctx *ecs.Context)) error
}
