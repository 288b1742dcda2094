package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/matzehuels/folio/pkg/canvas"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Settling thresholds in pixels and pixels per frame.
const (
	settleDistance = 0.01
	settleVelocity = 0.01
)

// Profile describes a damped spring in physical terms.
type Profile struct {
	Stiffness float64 `toml:"stiffness" json:"stiffness"`
	Damping   float64 `toml:"damping" json:"damping"`
	Mass      float64 `toml:"mass" json:"mass"`
}

// DefaultProfile is a stiff, near-critically damped spring.
var DefaultProfile = Profile{Stiffness: 300, Damping: 30, Mass: 0.8}

// AngularFrequency returns sqrt(k/m).
func (p Profile) AngularFrequency() float64 {
	if p.Mass <= 0 {
		return 0
	}
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)). 1 is critical damping.
func (p Profile) DampingRatio() float64 {
	km := p.Stiffness * p.Mass
	if km <= 0 {
		return 0
	}
	return p.Damping / (2 * math.Sqrt(km))
}

// Valid reports whether all parameters are positive and finite.
func (p Profile) Valid() bool {
	return positive(p.Stiffness) && positive(p.Damping) && positive(p.Mass)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Interpolator animates one position toward a target.
type Interpolator struct {
	spring harmonica.Spring
	pos    canvas.Point
	vel    canvas.Point
	target canvas.Point
}

// New creates an interpolator resting at start. A non-positive fps uses
// DefaultFPS and an invalid profile uses DefaultProfile.
func New(start canvas.Point, fps int, profile Profile) *Interpolator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if !profile.Valid() {
		profile = DefaultProfile
	}
	return &Interpolator{
		spring: harmonica.NewSpring(harmonica.FPS(fps), profile.AngularFrequency(), profile.DampingRatio()),
		pos:    start,
		target: start,
	}
}

// Retarget changes the destination. Position and velocity carry over.
func (in *Interpolator) Retarget(target canvas.Point) {
	in.target = target
}

// Jump places the interpolator at p with no velocity.
func (in *Interpolator) Jump(p canvas.Point) {
	in.pos, in.vel, in.target = p, canvas.Point{}, p
}

// Step advances one frame and returns the new position. Once close enough
// to the target the position snaps onto it.
func (in *Interpolator) Step() canvas.Point {
	if in.Settled() {
		return in.pos
	}
	in.pos.X, in.vel.X = in.spring.Update(in.pos.X, in.vel.X, in.target.X)
	in.pos.Y, in.vel.Y = in.spring.Update(in.pos.Y, in.vel.Y, in.target.Y)

	if in.pos.Dist(in.target) < settleDistance && math.Hypot(in.vel.X, in.vel.Y) < settleVelocity {
		in.pos, in.vel = in.target, canvas.Point{}
	}
	return in.pos
}

// Position returns the displayed position.
func (in *Interpolator) Position() canvas.Point { return in.pos }

// Velocity returns the current velocity per axis.
func (in *Interpolator) Velocity() canvas.Point { return in.vel }

// Target returns the destination.
func (in *Interpolator) Target() canvas.Point { return in.target }

// Settled reports whether the interpolator rests on its target.
func (in *Interpolator) Settled() bool {
	return in.pos == in.target && in.vel == (canvas.Point{})
}

// Sample returns the first frames positions of a trajectory from start to
// target. It is a pure function of its arguments.
func Sample(start, target canvas.Point, profile Profile, fps, frames int) []canvas.Point {
	in := New(start, fps, profile)
	in.Retarget(target)
	out := make([]canvas.Point, 0, frames)
	for i := 0; i < frames; i++ {
		out = append(out, in.Step())
	}
	return out
}
