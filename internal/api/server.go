package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/logger"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

const defaultCallTimeout = 2 * time.Second

var (
	errNoRegistry = errors.Error("preferences are not enabled")
	errUnknownKey = errors.Error("preferences type is not registered")
)

// NewServer exposes the preferences of host over HTTP. Every read and write
// runs on the update loop, so writes go through change detection and are
// saved like any other change.
func NewServer(cfg Config, log logger.Logger, host Host) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		DisableStartupMessage: true,
		RequestMethods:        []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodPut},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorBody(fe.Message))
		}
		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	s := &server{
		host:        host,
		http:        fiber.New(fiberCfg),
		addr:        cfg.HTTP.Addr,
		callTimeout: callTimeout,
		log:         serveLog,
	}

	s.setupRoutes()

	return s
}

type server struct {
	host        Host
	http        *fiber.App
	addr        string
	callTimeout time.Duration
	log         logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()
	s.log.Infof("inspector listening on %s", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return errors.WrapFail(s.http.ShutdownWithContext(ctx), "shutdown http server")
}

func (s *server) setupRoutes() {
	s.http.Get("/storage", s.handleStorage)
	s.http.Get("/preferences", s.handleList)
	s.http.Get("/preferences/:key", s.handleGet)
	s.http.Put("/preferences/:key", s.handlePut)
}

type storageInfo struct {
	Location   string   `json:"location"`
	Format     string   `json:"format"`
	Persistent bool     `json:"persistent"`
	Keys       []string `json:"keys"`
}

func (s *server) handleStorage(c *fiber.Ctx) error {
	var info storageInfo
	err := s.withRegistry(c, func(_ *ecs.Context, reg *prefs.Registry) error {
		info = storageInfo{
			Location:   reg.Storage().Location(),
			Format:     reg.Format().Name(),
			Persistent: reg.Persistent(),
		}
		for _, key := range reg.Keys() {
			info.Keys = append(info.Keys, string(key))
		}
		return nil
	})
	if err != nil {
		return s.sendFailure(c, err)
	}

	return c.JSON(info)
}

func (s *server) handleList(c *fiber.Ctx) error {
	var doc map[string]any
	err := s.withRegistry(c, func(ctx *ecs.Context, reg *prefs.Registry) error {
		doc = reg.Snapshot(ctx.World).Map()
		return nil
	})
	if err != nil {
		return s.sendFailure(c, err)
	}

	return c.JSON(doc)
}

func (s *server) handleGet(c *fiber.Ctx) error {
	key := prefs.TypeKey(c.Params("key"))

	var value prefs.Value
	err := s.withRegistry(c, func(ctx *ecs.Context, reg *prefs.Registry) error {
		if !reg.IsRegistered(key) {
			return errUnknownKey
		}
		value, _ = reg.Snapshot(ctx.World).Get(key)
		return nil
	})
	if err != nil {
		return s.sendFailure(c, err)
	}

	return c.JSON(value)
}

// handlePut merges a JSON object into the live value. Fields left out keep
// their current values.
func (s *server) handlePut(c *fiber.Ctx) error {
	key := prefs.TypeKey(c.Params("key"))

	patch, err := decodeBody(c.Body())
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "parse preferences patch"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	var value prefs.Value
	err = s.withRegistry(c, func(ctx *ecs.Context, reg *prefs.Registry) error {
		if !reg.IsRegistered(key) {
			return errUnknownKey
		}
		if err := reg.Apply(ctx, key, patch); err != nil {
			return err
		}
		value, _ = reg.Snapshot(ctx.World).Get(key)
		return nil
	})
	if err != nil {
		return s.sendFailure(c, err)
	}

	s.log.Infof("preferences %q updated over http", key)
	return c.Status(http.StatusOK).JSON(value)
}

func (s *server) withRegistry(c *fiber.Ctx, fn func(ctx *ecs.Context, reg *prefs.Registry) error) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.callTimeout)
	defer cancel()

	var fnErr error
	err := s.host.Call(ctx, func(ec *ecs.Context) {
		reg, ok := prefs.RegistryOf(ec.World)
		if !ok {
			fnErr = errNoRegistry
			return
		}
		fnErr = fn(ec, reg)
	})
	if err != nil {
		return errors.WrapFail(err, "reach update loop")
	}
	return fnErr
}

func (s *server) sendFailure(c *fiber.Ctx, err error) error {
	var decodeErr *prefs.DecodeError
	switch {
	case errors.Is(err, errUnknownKey):
		return s.sendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errNoRegistry):
		return s.sendError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return s.sendError(c, http.StatusServiceUnavailable, "update loop is busy")
	case errors.As(err, &decodeErr):
		s.log.Warn(err)
		return s.sendError(c, http.StatusBadRequest, decodeErr.Err.Error())
	default:
		return err
	}
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"status": "ERROR", "message": msg}
}

// decodeBody parses a JSON object keeping integers integral, so formats with
// distinct integer and float types (TOML) decode them into integer fields.
func decodeBody(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var patch map[string]any
	if err := dec.Decode(&patch); err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, errors.Error("body must be a json object")
	}
	return normalize(patch).(map[string]any), nil
}

func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
