package xwm

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindingsUnique(t *testing.T) {
	keys := make(map[Key]string)
	names := make(map[string]bool)
	for _, b := range DefaultBindings() {
		if other, ok := keys[b.Key]; ok {
			t.Errorf("%s and %s share a key", b.Name, other)
		}
		keys[b.Key] = b.Name

		assert.False(t, names[b.Name], b.Name)
		names[b.Name] = true
		assert.NotNil(t, b.Run, b.Name)
		assert.NotZero(t, b.Mods&modMask, b.Name)
	}
	assert.True(t, names["workspace-9"])
	assert.True(t, names["send-to-1"])
}

func TestCleanMods(t *testing.T) {
	state := uint16(xproto.ModMask4 | xproto.ModMaskLock | xproto.ModMask2 | xproto.KeyButMaskButton1)
	assert.Equal(t, uint16(xproto.ModMask4), cleanMods(state))
	assert.Equal(t, uint16(xproto.ModMask4|xproto.ModMaskShift), cleanMods(xproto.ModMask4|xproto.ModMaskShift|xproto.ModMaskLock))
}
