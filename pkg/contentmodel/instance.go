package contentmodel

import (
	"strings"

	"github.com/google/uuid"
)

// InstanceTag is the string form shared by every instance.
const InstanceTag = "[object Content]"

// parentAttr is the own attribute that carries the parent link.
const parentAttr = "parent"

// BoundAction is an action bound to an instance.
type BoundAction func(args ...any) any

// Instance is one realized object of a Type. It owns an attribute store and
// may delegate attribute and action resolution to a parent instance. The
// parent is a peer reference; removing either instance does not affect the
// other.
type Instance struct {
	Emitter

	id     uuid.UUID
	name   string
	typ    *Type
	attrs  map[string]any
	parent *Instance

	removing bool
	removed  bool
}

// ID returns the identifier assigned at Init.
func (i *Instance) ID() uuid.UUID {
	return i.id
}

// Name returns the id of the type the instance was created from.
func (i *Instance) Name() string {
	return i.name
}

// Type returns the type the instance was created from.
func (i *Instance) Type() *Type {
	return i.typ
}

// Parent returns the parent instance, or nil.
func (i *Instance) Parent() *Instance {
	return i.parent
}

// SetParent links p as the parent instance. It is equivalent to
// Set("parent", p) and emits the same change events.
func (i *Instance) SetParent(p *Instance) {
	if p == nil {
		i.Set(parentAttr, nil)
		return
	}
	i.Set(parentAttr, p)
}

// Removed reports whether Remove has completed.
func (i *Instance) Removed() bool {
	return i.removed
}

// Has reports whether name has an own value, either assigned or memoized.
func (i *Instance) Has(name string) bool {
	_, ok := i.attrs[name]
	return ok
}

// Attrs returns a copy of the own attribute store.
func (i *Instance) Attrs() map[string]any {
	attrs := make(map[string]any, len(i.attrs))
	for k, v := range i.attrs {
		attrs[k] = v
	}
	return attrs
}

// Get resolves a dot-separated attribute path. Absent values resolve to nil.
func (i *Instance) Get(path string) any {
	return i.resolve(path, nil)
}

func (i *Instance) resolve(path string, seen map[*Instance]bool) any {
	head, rest, _ := strings.Cut(path, ".")

	if v, ok := i.attrs[head]; ok {
		return descend(v, rest)
	}

	if a, ok := i.typ.attrs[head]; ok {
		switch a.Kind {
		case AttributeComputed:
			if a.Compute != nil {
				v := a.Compute(i)
				i.attrs[head] = v
				return descend(v, rest)
			}
		case AttributeStatic:
			if a.HasDefault {
				return descend(a.Default, rest)
			}
		}
	}

	if i.parent == nil {
		return nil
	}
	if seen == nil {
		seen = make(map[*Instance]bool)
	}
	seen[i] = true
	if seen[i.parent] {
		return nil
	}
	// The whole path is delegated so the parent applies its own fallbacks
	// to every segment.
	return i.parent.resolve(path, seen)
}

// Set assigns an own attribute value and emits "change" with
// (name, value, previous) followed by "change <name>" with the instance.
// previous is the old own value; defaults and uncomputed attributes count
// as nil.
func (i *Instance) Set(name string, value any) {
	previous := i.attrs[name]
	i.attrs[name] = value
	if name == parentAttr {
		p, _ := value.(*Instance)
		i.parent = p
	}

	i.Emit(EventChange, name, value, previous)
	i.Emit(ChangeEvent(name), i)
	i.typ.sink.AttributeChanged(i, name, value, previous)
}

// Call invokes action with args. The instance's own type is consulted
// first, then the parent chain. A missing action is a no-op returning nil.
func (i *Instance) Call(action string, args ...any) any {
	return i.call(action, args, nil)
}

func (i *Instance) call(action string, args []any, seen map[*Instance]bool) any {
	if fn, ok := i.typ.actions[action]; ok {
		if fn == nil {
			return nil
		}
		return fn(i, args...)
	}

	if i.parent == nil {
		return nil
	}
	if seen == nil {
		seen = make(map[*Instance]bool)
	}
	seen[i] = true
	if seen[i.parent] {
		return nil
	}
	return i.parent.call(action, args, seen)
}

// Responds reports whether action resolves on the instance's type or any
// parent.
func (i *Instance) Responds(action string) bool {
	seen := make(map[*Instance]bool)
	for cur := i; cur != nil && !seen[cur]; cur = cur.parent {
		if cur.typ.HasAction(action) {
			return true
		}
		seen[cur] = true
	}
	return false
}

// Action returns action bound to the instance. Resolution happens on each
// invocation, so actions registered later are picked up.
func (i *Instance) Action(action string) BoundAction {
	return func(args ...any) any {
		return i.Call(action, args...)
	}
}

// Remove emits "remove" on the instance, then on its type, and finally drops
// the instance from the type's live set. The instance remains usable for
// Get, Set and Call. Removing twice is a no-op.
func (i *Instance) Remove() {
	if i.removing || i.removed {
		return
	}
	i.removing = true

	i.Emit(EventRemove, i)
	i.typ.Emit(EventRemove, i)
	i.typ.deregister(i)

	i.removing = false
	i.removed = true
	i.typ.logger.Debug("removed content instance", "type", i.name, "instance_id", i.id)
	i.typ.sink.InstanceRemoved(i)
}

// String returns InstanceTag.
func (i *Instance) String() string {
	return InstanceTag
}
