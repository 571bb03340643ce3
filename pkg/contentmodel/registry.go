package contentmodel

import (
	"log/slog"
	"strings"

	"golang.org/x/exp/slices"
)

// Registry maps type identifiers to content types. The zero value is not
// usable; construct one with New.
type Registry struct {
	Emitter

	types  map[string]*Type
	sink   EventSink
	logger *slog.Logger
}

// Option represents a functional option for configuring a Registry
type Option func(*Registry)

// WithEventSink sets the event sink notified of lifecycle activity
func WithEventSink(sink EventSink) Option {
	return func(r *Registry) {
		r.sink = sink
	}
}

// WithLogger sets the logger used by the registry and its types
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a new, empty registry with the given options
func New(options ...Option) *Registry {
	r := &Registry{
		types: make(map[string]*Type),
	}

	for _, option := range options {
		option(r)
	}

	if r.sink == nil {
		r.sink = NewNoopEventSink()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Get returns the type registered under id, creating and defining it on
// first use. "define" is emitted on the new type and then on the registry.
func (r *Registry) Get(id string) *Type {
	if t, ok := r.types[id]; ok {
		return t
	}

	t := newType(id, r.sink, r.logger)
	r.types[id] = t
	r.logger.Debug("defined content type", "type", id)

	t.Emit(EventDefine, t)
	r.Emit(EventDefine, t)
	r.sink.TypeDefined(t)

	return t
}

// Lookup returns the type registered under id without creating it.
func (r *Registry) Lookup(id string) (*Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Types returns the registered types ordered by id.
func (r *Registry) Types() []*Type {
	types := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b *Type) int {
		return strings.Compare(a.id, b.id)
	})
	return types
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Clear discards every registered type and every registry-level listener.
// Instances created before Clear keep working against their old types.
func (r *Registry) Clear() {
	r.types = make(map[string]*Type)
	r.Off("")
	r.logger.Debug("cleared content registry")
}

var defaultRegistry = New()

// Default returns the process-wide registry used by the package functions.
func Default() *Registry {
	return defaultRegistry
}

// Get returns the type for id from the default registry, defining it if needed.
func Get(id string) *Type {
	return defaultRegistry.Get(id)
}

// Lookup returns the type for id from the default registry without creating it.
func Lookup(id string) (*Type, bool) {
	return defaultRegistry.Lookup(id)
}

// Clear resets the default registry.
func Clear() {
	defaultRegistry.Clear()
}

// On subscribes to registry-level events ("define") on the default registry.
func On(event string, l Listener) func() {
	return defaultRegistry.On(event, l)
}
