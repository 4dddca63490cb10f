package ecs

import (
	"github.com/phanxgames/kala"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WidgetEventType is the Donburi event type for kala widget events.
// Subscribe to this in your ECS systems to receive pressed, released, held,
// hovered, dragged and scrolled actions.
var WidgetEventType = events.NewEventType[kala.WidgetEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Widget events
// are published to WidgetEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) kala.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event kala.WidgetEvent) {
	WidgetEventType.Publish(s.world, event)
}
