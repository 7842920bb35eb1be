// Package events provides the synchronous notification bus shared by the
// viewer host, the layer manager and the plugin registry.
package events

import (
	"github.com/rs/zerolog"
)

// Type identifies a notification kind published on the bus.
type Type int

const (
	LayerAdded Type = iota
	LayerRemoved
	LayerChanged
	LayersReordered
	LayerSelectionChanged
	PluginLoaded
	PluginUnloaded
	PluginEnabledChanged
	PluginLoadFailed
	ConfigurationChanged
)

// String returns the event type name for logging.
func (t Type) String() string {
	switch t {
	case LayerAdded:
		return "layer_added"
	case LayerRemoved:
		return "layer_removed"
	case LayerChanged:
		return "layer_changed"
	case LayersReordered:
		return "layers_reordered"
	case LayerSelectionChanged:
		return "layer_selection_changed"
	case PluginLoaded:
		return "plugin_loaded"
	case PluginUnloaded:
		return "plugin_unloaded"
	case PluginEnabledChanged:
		return "plugin_enabled_changed"
	case PluginLoadFailed:
		return "plugin_load_failed"
	case ConfigurationChanged:
		return "configuration_changed"
	default:
		return "unknown"
	}
}

// PluginEvent is the payload carried by plugin lifecycle notifications.
type PluginEvent struct {
	Name    string
	Path    string
	Message string
	Enabled bool
}

// LayerEvent is the payload carried by layer notifications.
type LayerEvent struct {
	Name  string
	Index int
}

// Event is a single published notification.
type Event struct {
	Type Type
	Data any
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus is a synchronous publish/subscribe dispatcher. Handlers run on the
// publisher's goroutine in subscription order. The bus is not safe for
// concurrent use; all calls belong on the host's UI goroutine.
type Bus struct {
	subs   map[Type][]subscription
	nextID int
	log    zerolog.Logger
}

// NewBus returns an empty bus. Published events are traced at debug level
// through the given logger.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subs:   make(map[Type][]subscription),
		nextID: 1,
		log:    logger,
	}
}

// Subscribe registers a handler for the given event type and returns a
// subscription id usable with Unsubscribe.
func (b *Bus) Subscribe(t Type, h Handler) int {
	id := b.nextID
	b.nextID++
	b.subs[t] = append(b.subs[t], subscription{id: id, handler: h})

	return id
}

// Unsubscribe removes the subscription with the given id. Unknown ids are
// ignored.
func (b *Bus) Unsubscribe(id int) {
	for t, subs := range b.subs {
		for i, s := range subs {
			if s.id == id {
				b.subs[t] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish dispatches an event to all handlers subscribed to its type.
func (b *Bus) Publish(t Type, data any) {
	b.log.Debug().Str("event", t.String()).Msg("event published")
	for _, s := range b.subs[t] {
		s.handler(Event{Type: t, Data: data})
	}
}

// HasSubscribers reports whether any handler is registered for t.
func (b *Bus) HasSubscribers(t Type) bool {
	return len(b.subs[t]) > 0
}

// SubscriberCount returns the number of handlers registered for t.
func (b *Bus) SubscriberCount(t Type) int {
	return len(b.subs[t])
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.subs = make(map[Type][]subscription)
}
