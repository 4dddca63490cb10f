// Package ecs provides ECS adapters for kala's widget event dispatch.
//
// The primary adapter is [NewDonburiSink], which forwards every fired widget
// action into a [Donburi] world as a typed event. Subscribe to
// [WidgetEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
