package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// UIEventType is the Donburi event type for sprig UI events.
var UIEventType = events.NewEventType[sprig.UIEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Events are
// queued on UIEventType and delivered by events.ProcessAllEvents or
// UIEventType.ProcessEvents.
func NewDonburiStore(world donburi.World) sprig.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sprig.UIEvent) {
	UIEventType.Publish(s.world, event)
}
