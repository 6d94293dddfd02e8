package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command decoupled from the key that triggers it.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionMoveRight
	ActionMoveLeft
	ActionMoveUp
	ActionMoveDown
	ActionMoveForward
	ActionMoveBack
	ActionTogglePause
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionQuit:        "quit",
	ActionMoveRight:   "move-right",
	ActionMoveLeft:    "move-left",
	ActionMoveUp:      "move-up",
	ActionMoveDown:    "move-down",
	ActionMoveForward: "move-forward",
	ActionMoveBack:    "move-back",
	ActionTogglePause: "toggle-pause",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Bindings maps keys to actions.
type Bindings map[sdl.Keycode]Action

// DefaultBindings returns arrow keys plus vi-style hjkl, brackets for
// vertical movement, space to pause and escape or q to quit.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.K_ESCAPE:       ActionQuit,
		sdl.K_q:            ActionQuit,
		sdl.K_RIGHT:        ActionMoveRight,
		sdl.K_l:            ActionMoveRight,
		sdl.K_LEFT:         ActionMoveLeft,
		sdl.K_h:            ActionMoveLeft,
		sdl.K_UP:           ActionMoveForward,
		sdl.K_k:            ActionMoveForward,
		sdl.K_DOWN:         ActionMoveBack,
		sdl.K_j:            ActionMoveBack,
		sdl.K_RIGHTBRACKET: ActionMoveUp,
		sdl.K_LEFTBRACKET:  ActionMoveDown,
		sdl.K_SPACE:        ActionTogglePause,
	}
}

// Multiplier step sizes: shift slows movement, ctrl speeds it up.
const (
	baseMultiplier  = 4
	shiftDivisor    = 4
	ctrlMultiplier  = 5
	multiplierScale = 100
)

// Command is a resolved action with its modifier-scaled magnitude.
type Command struct {
	Action Action
	// Steps is the raw multiplier: 4 unmodified, 1 with shift, 20 with ctrl.
	Steps int
	// Amount is Steps as a position delta: 0.04, 0.01 or 0.2.
	Amount float32
}

// Resolve turns a key-down or key-repeat event into a command. Key-up events
// and unbound keys resolve to false.
func (b Bindings) Resolve(e Event) (Command, bool) {
	if e.Type != EventKeyDown {
		return Command{}, false
	}
	a, ok := b[e.Key]
	if !ok || a == ActionNone {
		return Command{}, false
	}
	steps := Multiplier(e.Mod)
	return Command{Action: a, Steps: steps, Amount: float32(steps) / multiplierScale}, true
}

// Multiplier returns the movement multiplier for a modifier state.
func Multiplier(mod sdl.Keymod) int {
	m := baseMultiplier
	if mod&sdl.KMOD_SHIFT != 0 {
		m /= shiftDivisor
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m *= ctrlMultiplier
	}
	return m
}
