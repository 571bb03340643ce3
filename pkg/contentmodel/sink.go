package contentmodel

import (
	"context"
	"log/slog"
)

// EventSink observes registry-wide lifecycle activity. Sinks are notified
// after the corresponding emitter listeners have run and cannot influence
// resolution.
type EventSink interface {
	// TypeDefined is fired when a registry creates a type
	TypeDefined(t *Type)

	// InstanceCreated is fired when Type.Init produces an instance
	InstanceCreated(inst *Instance)

	// InstanceRemoved is fired when an instance is removed from its type
	InstanceRemoved(inst *Instance)

	// AttributeChanged is fired by Instance.Set
	AttributeChanged(inst *Instance, name string, value, previous any)

	// Broadcast is fired by Type.Changed with the number of notified instances
	Broadcast(t *Type, attr string, notified int)
}

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) TypeDefined(t *Type)                                   {}
func (n *NoopEventSink) InstanceCreated(inst *Instance)                         {}
func (n *NoopEventSink) InstanceRemoved(inst *Instance)                         {}
func (n *NoopEventSink) AttributeChanged(inst *Instance, name string, v, p any) {}
func (n *NoopEventSink) Broadcast(t *Type, attr string, notified int)           {}

// LoggingEventSink logs lifecycle events but takes no other action.
// Useful for development and debugging.
type LoggingEventSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLoggingEventSink creates a sink that writes to logger at level.
func NewLoggingEventSink(logger *slog.Logger, level slog.Level) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger, level: level}
}

func (l *LoggingEventSink) log(msg string, args ...any) {
	l.logger.Log(context.Background(), l.level, msg, args...)
}

// TypeDefined logs the type definition
func (l *LoggingEventSink) TypeDefined(t *Type) {
	l.log("Content type defined", "type", t.ID())
}

// InstanceCreated logs the instance creation
func (l *LoggingEventSink) InstanceCreated(inst *Instance) {
	l.log("Content instance created", "type", inst.Name(), "instance_id", inst.ID())
}

// InstanceRemoved logs the instance removal
func (l *LoggingEventSink) InstanceRemoved(inst *Instance) {
	l.log("Content instance removed", "type", inst.Name(), "instance_id", inst.ID())
}

// AttributeChanged logs the attribute assignment
func (l *LoggingEventSink) AttributeChanged(inst *Instance, name string, value, previous any) {
	l.log("Content attribute changed", "type", inst.Name(), "instance_id", inst.ID(), "attr", name)
}

// Broadcast logs a type-level change broadcast
func (l *LoggingEventSink) Broadcast(t *Type, attr string, notified int) {
	l.log("Content change broadcast", "type", t.ID(), "attr", attr, "notified", notified)
}

// MultiEventSink fans out to several sinks in order.
type MultiEventSink []EventSink

func (m MultiEventSink) TypeDefined(t *Type) {
	for _, s := range m {
		s.TypeDefined(t)
	}
}

func (m MultiEventSink) InstanceCreated(inst *Instance) {
	for _, s := range m {
		s.InstanceCreated(inst)
	}
}

func (m MultiEventSink) InstanceRemoved(inst *Instance) {
	for _, s := range m {
		s.InstanceRemoved(inst)
	}
}

func (m MultiEventSink) AttributeChanged(inst *Instance, name string, value, previous any) {
	for _, s := range m {
		s.AttributeChanged(inst, name, value, previous)
	}
}

func (m MultiEventSink) Broadcast(t *Type, attr string, notified int) {
	for _, s := range m {
		s.Broadcast(t, attr, notified)
	}
}
