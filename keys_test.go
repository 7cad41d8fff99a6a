package hyprkeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitutions_Key(t *testing.T) {
	subs := NewSubstitutions(map[string]string{"Return": "⏎", "Hash": "hash"})

	tests := []struct {
		in, want string
	}{
		{"Super", "󰖳"},
		{"SUPER", "󰖳"},
		{"mouse:272", "LMB"},
		{"mouse_down", "Scroll ↑"},
		{"Slash", "/"},
		{"Return", "⏎"},
		{"return", "⏎"},
		{"Hash", "hash"},
		{"Q", "Q"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, subs.Key(tt.in), tt.in)
	}
}

func TestSubstitutions_NilIsIdentity(t *testing.T) {
	var subs *Substitutions
	assert.Equal(t, "SUPER", subs.Key("SUPER"))
	assert.Equal(t, "SHIFT + Q", subs.Combo(KeyBinding{Mods: []string{"SHIFT"}, Key: "Q"}))
}

func TestSubstitutions_Combo(t *testing.T) {
	subs := NewSubstitutions(nil)

	assert.Equal(t, "󰖳 + SHIFT + /", subs.Combo(KeyBinding{Mods: []string{"SUPER", "SHIFT"}, Key: "Slash"}))
	assert.Equal(t, "LMB", subs.Combo(KeyBinding{Mods: []string{}, Key: "mouse:272"}))
	assert.Equal(t, "", subs.Combo(KeyBinding{}))
}

func TestNewSubstitutions_DoesNotModifyDefaults(t *testing.T) {
	NewSubstitutions(map[string]string{"Super": "Win"})
	assert.Equal(t, "󰖳", DefaultSubstitutions["Super"])
}
