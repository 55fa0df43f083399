package main

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/nikmy/gameprefs/internal/api"
	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// loopService drives the app. An Exit request from a system stops the whole
// tree.
type loopService struct {
	app      *ecs.App
	interval time.Duration
}

func (s *loopService) Serve(ctx context.Context) error {
	if err := s.app.Run(ctx, s.interval); err != nil {
		return err
	}
	return suture.ErrTerminateSupervisorTree
}

func (s *loopService) String() string { return "update-loop" }

type httpService struct {
	srv api.Server
	log logger.Logger
}

func (s *httpService) Serve(ctx context.Context) error {
	err := s.srv.Serve(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := s.srv.Shutdown(shutdownCtx); shutdownErr != nil {
		s.log.Warn(shutdownErr)
	}

	if ctx.Err() != nil {
		return nil
	}
	return errors.WrapFail(err, "serve inspector")
}

func (s *httpService) String() string { return "inspector" }

func eventHook(log logger.Logger) suture.EventHook {
	return func(evt suture.Event) {
		switch evt.Type() {
		case suture.EventTypeServicePanic, suture.EventTypeServiceTerminate:
			log.Warnf("supervisor: %v", evt)
		default:
			log.Debugf("supervisor: %v", evt)
		}
	}
}
