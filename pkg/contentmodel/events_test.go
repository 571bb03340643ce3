package contentmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/content-model/pkg/contentmodel"
)

func TestEmitterOrder(t *testing.T) {
	var e contentmodel.Emitter
	var calls []string

	e.On("ping", func(args ...any) { calls = append(calls, "first") })
	e.On("ping", func(args ...any) { calls = append(calls, "second") })
	e.On("pong", func(args ...any) { calls = append(calls, "other") })

	e.Emit("ping")
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 2, e.ListenerCount("ping"))
}

func TestEmitterArgs(t *testing.T) {
	var e contentmodel.Emitter
	var got []any

	e.On("change", func(args ...any) { got = args })
	e.Emit("change", "items", 1, nil)

	assert.Equal(t, []any{"items", 1, nil}, got)
}

func TestEmitterCancel(t *testing.T) {
	var e contentmodel.Emitter
	calls := 0

	cancel := e.On("ping", func(args ...any) { calls++ })
	e.Emit("ping")
	cancel()
	cancel()
	e.Emit("ping")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, e.ListenerCount("ping"))
}

func TestEmitterOnce(t *testing.T) {
	var e contentmodel.Emitter
	calls := 0

	e.Once("ping", func(args ...any) { calls++ })
	e.Emit("ping")
	e.Emit("ping")

	assert.Equal(t, 1, calls)
}

func TestEmitterOff(t *testing.T) {
	var e contentmodel.Emitter
	calls := 0

	e.On("a", func(args ...any) { calls++ })
	e.On("b", func(args ...any) { calls++ })

	e.Off("a")
	e.Emit("a")
	e.Emit("b")
	assert.Equal(t, 1, calls)

	e.Off("")
	e.Emit("b")
	assert.Equal(t, 1, calls)
}

func TestEmitterMutationDuringEmit(t *testing.T) {
	var e contentmodel.Emitter
	var calls []string

	e.On("ping", func(args ...any) {
		calls = append(calls, "first")
		e.On("ping", func(args ...any) { calls = append(calls, "late") })
	})
	var cancelSecond func()
	cancelSecond = e.On("ping", func(args ...any) {
		calls = append(calls, "second")
		cancelSecond()
	})

	e.Emit("ping")
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	e.Emit("ping")
	assert.Equal(t, []string{"first", "late"}, calls)
}

func TestEmitterNilListener(t *testing.T) {
	var e contentmodel.Emitter
	cancel := e.On("ping", nil)
	cancel()
	e.Emit("ping")
	assert.Equal(t, 0, e.ListenerCount("ping"))
}
