// Package motion turns placement changes into smooth on-screen trajectories.
//
// An [Interpolator] drives a damped spring per axis toward a target position.
// Retargeting before the spring settles keeps the current displayed position
// and velocity, so a second drop mid-flight bends the path instead of
// restarting it. The default [Profile] is near-critically damped: icons
// overshoot by a fraction of a pixel at most and never oscillate visibly.
//
// Motion is purely a rendering concern. A [Tracker] reads committed
// positions from a placement snapshot and never writes them back.
package motion
