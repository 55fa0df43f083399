package ecs

import (
	"sort"
)

type Stage int

const (
	PreStartup Stage = iota
	Startup
	First
	PreUpdate
	Update
	PostUpdate
	Last

	stageCount
)

func (s Stage) String() string {
	return [...]string{
		"PreStartup",
		"Startup",
		"First",
		"PreUpdate",
		"Update",
		"PostUpdate",
		"Last",
	}[s]
}

// SystemSet labels a group of systems so that whole groups can be ordered.
type SystemSet string

type SystemOption func(s *systemEntry)

func InSet(set SystemSet) SystemOption {
	return func(s *systemEntry) { s.set = set }
}

func RunIf(cond Condition) SystemOption {
	return func(s *systemEntry) { s.conds = append(s.conds, cond) }
}

func Named(name string) SystemOption {
	return func(s *systemEntry) { s.name = name }
}

type systemEntry struct {
	name    string
	set     SystemSet
	conds   []Condition
	run     System
	lastRun Tick
}

// schedule keeps the systems of each stage. Systems outside configured sets
// run first, in insertion order; configured sets follow in chain order.
type schedule struct {
	systems [stageCount][]*systemEntry
	ranks   [stageCount]map[SystemSet]int
}

func newSchedule() *schedule {
	s := &schedule{}
	for i := range s.ranks {
		s.ranks[i] = make(map[SystemSet]int)
	}
	return s
}

func (s *schedule) add(stage Stage, e *systemEntry) {
	s.systems[stage] = append(s.systems[stage], e)
}

func (s *schedule) configure(stage Stage, sets ...SystemSet) {
	ranks := s.ranks[stage]
	for _, set := range sets {
		if _, ok := ranks[set]; ok {
			continue
		}
		ranks[set] = len(ranks) + 1
	}
}

func (s *schedule) ordered(stage Stage) []*systemEntry {
	ranks := s.ranks[stage]
	out := make([]*systemEntry, len(s.systems[stage]))
	copy(out, s.systems[stage])
	sort.SliceStable(out, func(i, j int) bool {
		return ranks[out[i].set] < ranks[out[j].set]
	})
	return out
}

func (s *schedule) run(app *App, stage Stage) {
	for _, e := range s.ordered(stage) {
		ctx := &Context{
			World:   app.world,
			app:     app,
			lastRun: e.lastRun,
			thisRun: app.world.advance(),
		}

		ok := true
		for _, cond := range e.conds {
			if !cond(ctx) {
				ok = false
				break
			}
		}
		if ok {
			e.run(ctx)
		}
		e.lastRun = ctx.thisRun
	}
}
