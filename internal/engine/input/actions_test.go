package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name string
		mod  sdl.Keymod
		want int
	}{
		{"none", sdl.KMOD_NONE, 4},
		{"shift", sdl.KMOD_LSHIFT, 1},
		{"ctrl", sdl.KMOD_RCTRL, 20},
		{"shift+ctrl", sdl.KMOD_LSHIFT | sdl.KMOD_LCTRL, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Multiplier(tt.mod); got != tt.want {
				t.Errorf("Multiplier() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name   string
		event  Event
		want   Action
		amount float32
		ok     bool
	}{
		{"escape quits", Event{Type: EventKeyDown, Key: sdl.K_ESCAPE}, ActionQuit, 0.04, true},
		{"q quits", Event{Type: EventKeyDown, Key: sdl.K_q}, ActionQuit, 0.04, true},
		{"l moves right", Event{Type: EventKeyDown, Key: sdl.K_l}, ActionMoveRight, 0.04, true},
		{"repeat counts", Event{Type: EventKeyDown, Key: sdl.K_LEFT, Repeat: true}, ActionMoveLeft, 0.04, true},
		{"shift slows", Event{Type: EventKeyDown, Key: sdl.K_UP, Mod: sdl.KMOD_LSHIFT}, ActionMoveForward, 0.01, true},
		{"ctrl speeds", Event{Type: EventKeyDown, Key: sdl.K_j, Mod: sdl.KMOD_LCTRL}, ActionMoveBack, 0.2, true},
		{"bracket up", Event{Type: EventKeyDown, Key: sdl.K_RIGHTBRACKET}, ActionMoveUp, 0.04, true},
		{"space pauses", Event{Type: EventKeyDown, Key: sdl.K_SPACE}, ActionTogglePause, 0.04, true},
		{"key up ignored", Event{Type: EventKeyUp, Key: sdl.K_ESCAPE}, ActionNone, 0, false},
		{"unbound key", Event{Type: EventKeyDown, Key: sdl.K_F1}, ActionNone, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := b.Resolve(tt.event)
			if ok != tt.ok {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.ok)
			}
			if cmd.Action != tt.want {
				t.Errorf("Resolve() action = %s, want %s", cmd.Action, tt.want)
			}
			if diff := cmd.Amount - tt.amount; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("Resolve() amount = %v, want %v", cmd.Amount, tt.amount)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionTogglePause.String() != "toggle-pause" {
		t.Errorf("unexpected name %q", ActionTogglePause.String())
	}
	if Action(99).String() != "action(99)" {
		t.Errorf("unexpected name %q", Action(99).String())
	}
}
