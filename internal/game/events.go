package game

// EventType names one kind of simulation event. The values double as the
// category keys used in the structured sim log.
type EventType string

const (
	EventPhaseChanged    EventType = "phase_changed"
	EventPiecePlaced     EventType = "piece_placed"
	EventTerritoryUpdate EventType = "territory_update"
	EventCannonPlaced    EventType = "cannon_placed"
	EventCannonRemoved   EventType = "cannon_removed"
	EventCannonDestroyed EventType = "cannon_destroyed"
	EventWaveSpawned     EventType = "wave_spawned"
	EventBossSpawned     EventType = "boss_spawned"
	EventShipHit         EventType = "ship_hit"
	EventShipDestroyed   EventType = "ship_destroyed"
	EventWallDestroyed   EventType = "wall_destroyed"
	EventTerrainImpact   EventType = "terrain_impact"
	EventWaterSplash     EventType = "water_splash"
	EventCastleDamaged   EventType = "castle_damaged"
	EventLifeLost        EventType = "life_lost"
	EventLevelComplete   EventType = "level_complete"
	EventGameOver        EventType = "game_over"
	EventVictory         EventType = "victory"
)

// Event is one dispatched occurrence. Data carries the payload struct for the
// event type (PhaseChange, ShipEvent, ImpactEvent, ...) and may be nil for
// events that need none.
type Event struct {
	Type EventType
	Data interface{}
}

// ShipEvent is the payload for ship hit/destroyed/boss events.
type ShipEvent struct {
	ShipID   int
	Type     ShipType
	X, Y     float64
	Damage   int
	Points   int
	Critical bool
}

// ImpactEvent is the payload for terrain, wall, splash, cannon and castle
// impact events.
type ImpactEvent struct {
	Cell     Point
	CastleID int
	CannonID int
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(e Event)

// OnEvent calls the wrapped function.
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Dispatcher is a minimal synchronous pub/sub hub. The engine dispatches,
// the shell and the sim log subscribe; the simulation core never depends on
// who is listening.
type Dispatcher struct {
	listeners map[EventType][]Listener
	all       []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

// Subscribe registers a listener for one event type.
func (d *Dispatcher) Subscribe(t EventType, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll registers a listener for every event type.
func (d *Dispatcher) SubscribeAll(l Listener) {
	d.all = append(d.all, l)
}

// Unsubscribe removes a listener from one event type. The listener must be
// a comparable type (a pointer, not a ListenerFunc) to be found again.
func (d *Dispatcher) Unsubscribe(t EventType, l Listener) {
	ls := d.listeners[t]
	for i, x := range ls {
		if x == l {
			d.listeners[t] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers the event synchronously to every matching listener.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
	for _, l := range d.all {
		l.OnEvent(e)
	}
}
