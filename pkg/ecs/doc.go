// Package ecs is the host loop the preferences layer plugs into: typed
// resources with per-tick change detection, stages and ordered system sets,
// run conditions, plugins and a submit queue for other goroutines.
//
// It carries no entities or queries; only the pieces a resource-driven plugin
// needs.
package ecs
