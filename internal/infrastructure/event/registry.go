package event

import (
	"slices"
	"sync"

	"github.com/menudash/backend/internal/domain/shared"
)

// subscription is one Register call. A nil types set matches every event.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) matches(eventType string) bool {
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry holds the bus subscriptions in registration order
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []subscription
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, or to every event when none are given
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
}

// Unregister drops every subscription of handler
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.handler == handler })
	r.mu.Unlock()
}

// GetHandlers returns the handlers subscribed to eventType by name, then the
// catch-all handlers
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var typed, all []shared.EventHandler
	for _, s := range r.subs {
		switch {
		case s.types == nil:
			all = append(all, s.handler)
		case s.matches(eventType):
			typed = append(typed, s.handler)
		}
	}
	return append(typed, all...)
}

// EventTypes lists the event types with at least one named subscription, sorted
func (r *HandlerRegistry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var types []string
	for _, s := range r.subs {
		for t := range s.types {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	slices.Sort(types)
	return types
}
