// Package viz renders trajectories in the terminal: a braille-canvas 3D
// projection for the static path plot and an interactive frame-by-frame
// playback of the run. It consumes only the finished trajectory data and
// never touches the solver, so the simulator stays testable headless.
package viz
