package ecs

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/nikmy/gameprefs/pkg/logger"
)

// Plugin bundles setup that can be added to an App.
type Plugin interface {
	Build(app *App)
}

// FrameCount is updated at the end of every App.Update.
type FrameCount struct {
	N uint64
}

type Option func(a *App)

func WithLogger(log logger.Logger) Option {
	return func(a *App) { a.log = log }
}

// App drives a World through its stages. Everything except Submit, Call and
// Exit must be used from a single goroutine.
type App struct {
	world    *World
	schedule *schedule
	log      logger.Logger
	plugins  map[reflect.Type]struct{}
	started  bool

	mu      sync.Mutex
	pending []func(ctx *Context)
	exit    bool
}

func New(opts ...Option) *App {
	a := &App{
		world:    NewWorld(),
		schedule: newSchedule(),
		log:      logger.NewStub(),
		plugins:  make(map[reflect.Type]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	InsertResource(a.world, &FrameCount{})
	a.AddSystems(First, a.drainSubmitted, Named("ecs.submitted"))
	return a
}

func (a *App) World() *World { return a.world }

func (a *App) Logger() logger.Logger { return a.log }

// Started reports whether the startup stages already ran.
func (a *App) Started() bool { return a.started }

// AddPlugins builds every plugin not added before. A second plugin of the
// same concrete type is skipped with a warning.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		t := reflect.TypeOf(p)
		if _, ok := a.plugins[t]; ok {
			a.log.Warnf("plugin %s already added, skipping", t)
			continue
		}
		a.plugins[t] = struct{}{}
		p.Build(a)
	}
	return a
}

// HasPlugin reports whether a plugin of type P was added.
func HasPlugin[P Plugin](a *App) bool {
	_, ok := a.plugins[typeOf[P]()]
	return ok
}

func (a *App) AddSystems(stage Stage, system System, opts ...SystemOption) *App {
	e := &systemEntry{run: system}
	for _, opt := range opts {
		opt(e)
	}
	a.schedule.add(stage, e)
	return a
}

// ConfigureSets orders sets inside a stage. Repeated calls extend the chain.
func (a *App) ConfigureSets(stage Stage, sets ...SystemSet) *App {
	a.schedule.configure(stage, sets...)
	return a
}

// Update runs the startup stages once, then one pass of the update stages.
func (a *App) Update() {
	if !a.started {
		a.schedule.run(a, PreStartup)
		a.schedule.run(a, Startup)
		a.started = true
	}
	for stage := First; stage < stageCount; stage++ {
		a.schedule.run(a, stage)
	}
	if fc, ok := GetResource[FrameCount](a.world); ok {
		fc.N++
	}
}

// Run calls Update every interval until ctx is done or Exit is requested.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.Update()
		if a.exitRequested() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *App) Exit() {
	a.mu.Lock()
	a.exit = true
	a.mu.Unlock()
}

func (a *App) exitRequested() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exit
}

// Submit queues fn to run inside the First stage of the next Update.
// Safe for concurrent use.
func (a *App) Submit(fn func(ctx *Context)) {
	a.mu.Lock()
	a.pending = append(a.pending, fn)
	a.mu.Unlock()
}

// Call submits fn and waits until it ran or ctx is done.
func (a *App) Call(ctx context.Context, fn func(ctx *Context)) error {
	done := make(chan struct{})
	a.Submit(func(sc *Context) {
		defer close(done)
		fn(sc)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) drainSubmitted(ctx *Context) {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	for _, fn := range pending {
		fn(ctx)
	}
}
