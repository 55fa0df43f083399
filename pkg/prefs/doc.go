// Package prefs persists user preferences of an ecs.App.
//
// Each registered type lives in the World as a Resource and is stored under
// its TypeKey inside one document per application. The document is read once
// before Startup and written back in the Last stage of any update in which a
// preferences resource was mutated. Without a Plugin the registry still works
// but keeps everything in memory.
package prefs
