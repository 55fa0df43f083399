package prefs

import (
	"github.com/nikmy/gameprefs/pkg/ecs"
)

const (
	// SetLoad runs in PreStartup. Systems that need loaded values belong to
	// Startup or later.
	SetLoad ecs.SystemSet = "prefs.load"
	// SetSave runs in Last, after every system of the stage outside a set.
	SetSave ecs.SystemSet = "prefs.save"
)

func addSyncSystems(app *ecs.App) {
	app.
		AddSystems(ecs.PreStartup, loadSystem, ecs.InSet(SetLoad), ecs.Named("prefs.load")).
		AddSystems(ecs.Last, saveSystem, ecs.InSet(SetSave), ecs.Named("prefs.save"), ecs.RunIf(dirty)).
		ConfigureSets(ecs.PreStartup, SetLoad).
		ConfigureSets(ecs.Last, SetSave)
}

func loadSystem(ctx *ecs.Context) {
	reg, ok := RegistryOf(ctx.World)
	if !ok || reg.loaded {
		return
	}
	reg.load(ctx.World)
}

func saveSystem(ctx *ecs.Context) {
	if reg, ok := RegistryOf(ctx.World); ok {
		reg.save(ctx.World)
	}
}

// dirty is true when any registered Resource was written since the save
// system last evaluated it.
func dirty(ctx *ecs.Context) bool {
	reg, ok := RegistryOf(ctx.World)
	return ok && reg.loaded && reg.anyMutated(ctx)
}
