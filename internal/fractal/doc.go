// Package fractal implements the incremental escape-time engine behind forktal.
//
// The package is built from three pieces:
//
//   - [Point]: one pixel's iterated quadratic map z ← z² + c
//   - [Viewport]: the rectangle of the complex plane mapped onto the grid
//   - [Field]: the grid of Points, stepped in lock-step on a fixed cadence
//
// Hosts feed elapsed wall time into [Field.Step] and call [Field.Draw] with
// an RGBA8 buffer whenever they want a frame. Iteration advances at one step
// per tick (50ms by default) no matter how often the host renders.
//
// # Example
//
//	f := fractal.New(400, 300)
//	f.Step(time.Since(last))
//	f.Draw(pixels)
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Drive a Field from a single goroutine.
package fractal
