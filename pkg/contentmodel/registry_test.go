package contentmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-model/pkg/contentmodel"
)

func TestRegistryDefine(t *testing.T) {
	reg := contentmodel.New()

	var defined []string
	reg.On(contentmodel.EventDefine, func(args ...any) {
		defined = append(defined, args[0].(*contentmodel.Type).ID())
	})

	hello := reg.Get("hello")
	require.NotNil(t, hello)
	assert.Equal(t, "hello", hello.ID())
	assert.Same(t, hello, reg.Get("hello"))
	assert.Equal(t, []string{"hello"}, defined)

	reg.Get("world")
	assert.Equal(t, []string{"hello", "world"}, defined)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryLookup(t *testing.T) {
	reg := contentmodel.New()

	_, ok := reg.Lookup("menu")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	menu := reg.Get("menu")
	found, ok := reg.Lookup("menu")
	require.True(t, ok)
	assert.Same(t, menu, found)
}

func TestRegistryTypesSorted(t *testing.T) {
	reg := contentmodel.New()
	reg.Get("menu")
	reg.Get("button")
	reg.Get("list")

	var ids []string
	for _, typ := range reg.Types() {
		ids = append(ids, typ.ID())
	}
	assert.Equal(t, []string{"button", "list", "menu"}, ids)
}

func TestRegistryClear(t *testing.T) {
	reg := contentmodel.New()

	calls := 0
	reg.On(contentmodel.EventDefine, func(args ...any) { calls++ })

	before := reg.Get("menu").Attr("items", "array", []int{1, 2, 3})
	inst := before.Init(nil)
	assert.Equal(t, 1, calls)

	reg.Clear()
	assert.Equal(t, 0, reg.Len())

	after := reg.Get("menu")
	assert.NotSame(t, before, after)
	assert.Equal(t, 1, calls, "registry listeners are dropped by Clear")
	_, ok := after.Descriptor("items")
	assert.False(t, ok)

	// Instances of the discarded type keep working.
	assert.Equal(t, []int{1, 2, 3}, inst.Get("items"))
	inst.Set("items", []int{4})
	assert.Equal(t, []int{4}, inst.Get("items"))
}

func TestRegistryDefineOnTypeEmitter(t *testing.T) {
	reg := contentmodel.New()

	var order []string
	reg.On(contentmodel.EventDefine, func(args ...any) { order = append(order, "registry") })
	reg.Get("menu")

	// The type's own define has already fired; late subscribers see nothing.
	menu := reg.Get("menu")
	menu.On(contentmodel.EventDefine, func(args ...any) { order = append(order, "type") })
	reg.Get("menu")

	assert.Equal(t, []string{"registry"}, order)
}

func TestDefaultRegistry(t *testing.T) {
	contentmodel.Clear()
	t.Cleanup(contentmodel.Clear)

	var defined *contentmodel.Type
	contentmodel.On(contentmodel.EventDefine, func(args ...any) {
		defined = args[0].(*contentmodel.Type)
	})

	hello := contentmodel.Get("hello")
	require.NotNil(t, defined)
	assert.Equal(t, "hello", defined.ID())
	assert.Same(t, hello, defined)

	found, ok := contentmodel.Lookup("hello")
	require.True(t, ok)
	assert.Same(t, hello, found)
	assert.Same(t, hello, contentmodel.Default().Get("hello"))
}
