package scene

import (
	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/internal/engine/input"
	"github.com/ejricha/glpipeline/internal/engine/movement"
)

// Controller applies key commands to a Movement.
type Controller struct {
	move     *movement.Movement
	bindings input.Bindings
	drive    Drive
	log      *zap.Logger
}

// NewController returns a controller over move. nil bindings means
// input.DefaultBindings.
func NewController(move *movement.Movement, bindings input.Bindings, drive Drive, log *zap.Logger) *Controller {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{move: move, bindings: bindings, drive: drive, log: log}
}

// Handle resolves and applies one event. It returns true when the viewer
// should quit.
func (c *Controller) Handle(e input.Event) bool {
	cmd, ok := c.bindings.Resolve(e)
	if !ok {
		if e.Type == input.EventKeyDown {
			c.log.Debug("unbound key", zap.Int32("key", int32(e.Key)))
		}
		return false
	}
	return c.Apply(cmd)
}

// Apply runs one command.
func (c *Controller) Apply(cmd input.Command) bool {
	switch cmd.Action {
	case input.ActionQuit:
		return true
	case input.ActionTogglePause:
		c.move.PlayPause()
	default:
		if !c.step(cmd) {
			return false
		}
	}
	c.log.Debug("movement", zap.Stringer("action", cmd.Action), zap.Stringer("state", c.move))
	return false
}

type step struct {
	position movement.Axis
	posSign  float32
	velocity movement.Axis
	velSign  int
}

// Forward is -Z in position mode, matching a camera looking down -Z.
var steps = map[input.Action]step{
	input.ActionMoveRight:   {movement.AxisX, 1, movement.AxisX, 1},
	input.ActionMoveLeft:    {movement.AxisX, -1, movement.AxisX, -1},
	input.ActionMoveForward: {movement.AxisZ, -1, movement.AxisY, 1},
	input.ActionMoveBack:    {movement.AxisZ, 1, movement.AxisY, -1},
	input.ActionMoveUp:      {movement.AxisY, 1, movement.AxisZ, 1},
	input.ActionMoveDown:    {movement.AxisY, -1, movement.AxisZ, -1},
}

func (c *Controller) step(cmd input.Command) bool {
	s, ok := steps[cmd.Action]
	if !ok {
		return false
	}
	if c.drive == DriveVelocity {
		c.move.IncrementVelocity(s.velocity, s.velSign*cmd.Steps)
	} else {
		c.move.Increment(s.position, s.posSign*cmd.Amount)
	}
	return true
}
