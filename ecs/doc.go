// Package ecs bridges sprig UI events into an entity component system.
//
// [NewDonburiStore] publishes every event fired on an actor with a non-zero
// EntityID into a [Donburi] world. Subscribe to [UIEventType] in your ECS
// systems to react to clicks, focus changes and widget value changes.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	hud.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
