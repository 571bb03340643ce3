package contentmodel

// Event names emitted by types and instances.
const (
	EventDefine = "define"
	EventInit   = "init"
	EventRemove = "remove"
	EventChange = "change"
)

// ChangeEvent returns the per-attribute change event name for attr.
func ChangeEvent(attr string) string {
	return EventChange + " " + attr
}

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

type subscription struct {
	id       uint64
	listener Listener
	once     bool
}

// Emitter is a synchronous named-event channel. Listeners run in
// registration order on the goroutine that calls Emit.
type Emitter struct {
	nextID    uint64
	listeners map[string][]subscription
}

// On registers a listener for event and returns a function that removes it.
func (e *Emitter) On(event string, l Listener) func() {
	return e.add(event, l, false)
}

// Once registers a listener that is removed after its first invocation.
func (e *Emitter) Once(event string, l Listener) func() {
	return e.add(event, l, true)
}

func (e *Emitter) add(event string, l Listener, once bool) func() {
	if l == nil {
		return func() {}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]subscription)
	}
	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], subscription{id: id, listener: l, once: once})
	return func() { e.remove(event, id) }
}

func (e *Emitter) remove(event string, id uint64) {
	subs := e.listeners[event]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy so a snapshot taken by an in-flight Emit stays intact.
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = next
		}
		return
	}
}

// Off removes every listener for event. An empty event name removes all
// listeners on the emitter.
func (e *Emitter) Off(event string) {
	if event == "" {
		e.listeners = nil
		return
	}
	delete(e.listeners, event)
}

// Emit invokes the listeners registered for event with args. The listener
// list is captured before the first call, so listeners added during dispatch
// are not invoked until the next Emit.
func (e *Emitter) Emit(event string, args ...any) {
	subs := e.listeners[event]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		if s.once {
			e.remove(event, s.id)
		}
		s.listener(args...)
	}
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event string) int {
	return len(e.listeners[event])
}
