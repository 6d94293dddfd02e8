// Package movement tracks a position and a bounded, pausable velocity.
package movement

import "fmt"

// ParameterMax bounds a Parameter to [-ParameterMax, ParameterMax].
const ParameterMax = 100

// Parameter is a clamped value that reads as zero while paused.
type Parameter struct {
	val    int
	paused bool
}

// Get returns the value, or 0 while paused.
func (p *Parameter) Get() int {
	if p.paused {
		return 0
	}
	return p.val
}

// Raw returns the stored value regardless of pause.
func (p *Parameter) Raw() int {
	return p.val
}

// Set stores val, clamped to the parameter range.
func (p *Parameter) Set(val int) {
	p.val = clamp(val)
}

// Increment adds delta, clamping at the range bounds.
func (p *Parameter) Increment(delta int) {
	p.val = clamp(p.val + delta)
}

// Pause keeps the value but makes Get return 0.
func (p *Parameter) Pause(paused bool) {
	p.paused = paused
}

// Paused reports whether the parameter is paused.
func (p *Parameter) Paused() bool {
	return p.paused
}

func (p Parameter) String() string {
	return fmt.Sprint(p.Get())
}

func clamp(v int) int {
	switch {
	case v > ParameterMax:
		return ParameterMax
	case v < -ParameterMax:
		return -ParameterMax
	default:
		return v
	}
}

// Axis selects a component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Movement holds a position and a per-axis velocity.
type Movement struct {
	pos    [3]float32
	vel    [3]Parameter
	paused bool
}

// Position returns the current position.
func (m *Movement) Position() (x, y, z float32) {
	return m.pos[AxisX], m.pos[AxisY], m.pos[AxisZ]
}

// Get returns one position component.
func (m *Movement) Get(a Axis) float32 {
	return m.pos[a]
}

// Set places one position component.
func (m *Movement) Set(a Axis, v float32) {
	m.pos[a] = v
}

// Increment moves one position component by delta.
func (m *Movement) Increment(a Axis, delta float32) {
	m.pos[a] += delta
}

// Velocity returns one velocity component, 0 while paused.
func (m *Movement) Velocity(a Axis) int {
	return m.vel[a].Get()
}

// SetVelocity sets one velocity component.
func (m *Movement) SetVelocity(a Axis, v int) {
	m.vel[a].Set(v)
}

// IncrementVelocity changes one velocity component, clamped.
func (m *Movement) IncrementVelocity(a Axis, delta int) {
	m.vel[a].Increment(delta)
}

// Pause freezes or releases every velocity component.
func (m *Movement) Pause(paused bool) {
	m.paused = paused
	for i := range m.vel {
		m.vel[i].Pause(paused)
	}
}

// PlayPause toggles the pause state.
func (m *Movement) PlayPause() {
	m.Pause(!m.paused)
}

// Paused reports whether movement is paused.
func (m *Movement) Paused() bool {
	return m.paused
}

// Step advances the position by velocity over dt seconds. A velocity of
// ParameterMax moves one unit per second.
func (m *Movement) Step(dt float32) {
	for i := range m.pos {
		m.pos[i] += float32(m.vel[i].Get()) / ParameterMax * dt
	}
}

func (m *Movement) String() string {
	return fmt.Sprintf("Position:(%g, %g, %g) ; Velocity:[%v %v %v]",
		m.pos[AxisX], m.pos[AxisY], m.pos[AxisZ],
		m.vel[AxisX], m.vel[AxisY], m.vel[AxisZ])
}
