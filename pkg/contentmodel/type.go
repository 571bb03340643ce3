package contentmodel

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// ComputedFunc produces a computed attribute value for an instance.
type ComputedFunc func(inst *Instance) any

// ActionFunc implements a named action. inst is the instance the action was
// called on, which for parent delegation is the parent that owns the action.
type ActionFunc func(inst *Instance, args ...any) any

// AttributeKind distinguishes static-default from computed attributes
type AttributeKind string

const (
	AttributeStatic   AttributeKind = "static"
	AttributeComputed AttributeKind = "computed"
)

// Attribute describes an attribute declared on a type
type Attribute struct {
	Name string
	Kind AttributeKind

	// TypeTag is informational only; values are never checked against it.
	TypeTag    string
	Default    any
	HasDefault bool

	Compute ComputedFunc
}

// Type is a named content schema: attribute and action descriptors plus the
// set of live instances created from it.
type Type struct {
	Emitter

	id      string
	attrs   map[string]*Attribute
	actions map[string]ActionFunc
	live    []*Instance

	sink   EventSink
	logger *slog.Logger
}

func newType(id string, sink EventSink, logger *slog.Logger) *Type {
	return &Type{
		id:      id,
		attrs:   make(map[string]*Attribute),
		actions: make(map[string]ActionFunc),
		sink:    sink,
		logger:  logger,
	}
}

// ID returns the type identifier.
func (t *Type) ID() string {
	return t.id
}

// Attr declares a static-default attribute. typeTag is advisory metadata.
// Without a default the attribute resolves as absent and falls through to
// the parent instance.
func (t *Type) Attr(name, typeTag string, defaultValue ...any) *Type {
	a := &Attribute{
		Name:    name,
		Kind:    AttributeStatic,
		TypeTag: typeTag,
	}
	if len(defaultValue) > 0 {
		a.Default = defaultValue[0]
		a.HasDefault = true
	}
	t.attrs[name] = a
	return t
}

// Computed declares an attribute whose value is produced by fn on first
// access and memoized on each instance.
func (t *Type) Computed(name string, fn ComputedFunc) *Type {
	t.attrs[name] = &Attribute{
		Name:    name,
		Kind:    AttributeComputed,
		Compute: fn,
	}
	return t
}

// Action registers a named action.
func (t *Type) Action(name string, fn ActionFunc) *Type {
	t.actions[name] = fn
	return t
}

// Descriptor returns the attribute declared under name.
func (t *Type) Descriptor(name string) (Attribute, bool) {
	a, ok := t.attrs[name]
	if !ok {
		return Attribute{}, false
	}
	return *a, true
}

// Attributes returns the declared attributes ordered by name.
func (t *Type) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(t.attrs))
	for _, a := range t.attrs {
		attrs = append(attrs, *a)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs
}

// HasAction reports whether the type itself declares action name.
func (t *Type) HasAction(name string) bool {
	_, ok := t.actions[name]
	return ok
}

// Actions returns the declared action names in sorted order.
func (t *Type) Actions() []string {
	names := make([]string, 0, len(t.actions))
	for name := range t.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init creates an instance of the type. Entries in props become the
// instance's own attributes; a "parent" entry holding an *Instance also sets
// the parent link. "init" is emitted on the type, then on the instance.
func (t *Type) Init(props map[string]any) *Instance {
	inst := &Instance{
		id:    uuid.New(),
		name:  t.id,
		typ:   t,
		attrs: make(map[string]any, len(props)),
	}
	for k, v := range props {
		inst.attrs[k] = v
	}
	if p, ok := props[parentAttr].(*Instance); ok {
		inst.parent = p
	}

	t.live = append(t.live, inst)
	t.logger.Debug("initialized content instance", "type", t.id, "instance_id", inst.id)

	t.Emit(EventInit, inst)
	inst.Emit(EventInit, inst)
	t.sink.InstanceCreated(inst)

	return inst
}

// Instances returns the live instances in creation order.
func (t *Type) Instances() []*Instance {
	return slices.Clone(t.live)
}

// Changed emits "change <attr>" on every live instance and returns the
// number of instances notified. Cached values are left untouched.
func (t *Type) Changed(attr string) int {
	event := ChangeEvent(attr)
	notified := 0
	for _, inst := range slices.Clone(t.live) {
		// A listener earlier in the broadcast may have removed it.
		if inst.removed {
			continue
		}
		inst.Emit(event, inst)
		notified++
	}
	t.sink.Broadcast(t, attr, notified)
	return notified
}

func (t *Type) deregister(inst *Instance) {
	if i := slices.Index(t.live, inst); i >= 0 {
		t.live = slices.Delete(t.live, i, i+1)
	}
}
