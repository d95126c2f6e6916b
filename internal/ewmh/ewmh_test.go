package ewmh

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/registry"
)

func newRegistryWithWindow(id uint32) (*registry.Registry, registry.Handle) {
	reg := registry.New()
	c := &client.Client{}
	c.Window.Id = xproto.Window(id)
	return reg, reg.Add(c)
}

func TestActivateAndCloseRouteToManagedWindow(t *testing.T) {
	reg, h := newRegistryWithWindow(77)

	var activated, closed []registry.Handle
	HandleClientMessage(nil, reg, "_NET_ACTIVE_WINDOW", 77, []uint32{2, 0, 0, 0, 0},
		func(g registry.Handle) { activated = append(activated, g) },
		func(g registry.Handle) { closed = append(closed, g) },
		nil, nil, nil)
	assert.Equal(t, []registry.Handle{h}, activated)
	assert.Empty(t, closed)

	HandleClientMessage(nil, reg, "_NET_CLOSE_WINDOW", 77, []uint32{0, 0, 0, 0, 0},
		nil,
		func(g registry.Handle) { closed = append(closed, g) },
		nil, nil, nil)
	assert.Equal(t, []registry.Handle{h}, closed)
}

func TestDesktopMessageCarriesRawIndex(t *testing.T) {
	reg, h := newRegistryWithWindow(77)

	var gotHandle registry.Handle
	gotIdx := -2
	HandleClientMessage(nil, reg, "_NET_WM_DESKTOP", 77, []uint32{0xFFFFFFFF, 0, 0, 0, 0},
		nil, nil,
		func(g registry.Handle, idx int) { gotHandle, gotIdx = g, idx },
		nil, nil)
	assert.Equal(t, h, gotHandle)
	assert.Equal(t, uint32(0xFFFFFFFF), uint32(gotIdx), "the pin sentinel must survive the int round trip")
}

func TestCurrentDesktopWorksForUnmanagedRootWindow(t *testing.T) {
	reg := registry.New()

	gotIdx := -1
	HandleClientMessage(nil, reg, "_NET_CURRENT_DESKTOP", 1, []uint32{3, 0, 0, 0, 0},
		nil, nil, nil, nil,
		func(idx int) { gotIdx = idx })
	assert.Equal(t, 3, gotIdx)
}

func TestMessagesForUnmanagedWindowsAreIgnored(t *testing.T) {
	reg := registry.New()

	called := false
	HandleClientMessage(nil, reg, "_NET_ACTIVE_WINDOW", 12345, []uint32{2, 0, 0, 0, 0},
		func(registry.Handle) { called = true }, nil, nil, nil, nil)
	assert.False(t, called)
}

func TestUnknownMessageTypeIsIgnored(t *testing.T) {
	reg, _ := newRegistryWithWindow(77)

	assert.NotPanics(t, func() {
		HandleClientMessage(nil, reg, "_NET_MOVERESIZE_WINDOW", 77, []uint32{0, 0, 0, 0, 0},
			func(registry.Handle) { t.Fatal("no handler may fire for an unsupported message") },
			nil, nil, nil, nil)
	})
}
