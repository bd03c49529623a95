// Package subprocess runs a TransformElement or SinkElement's heavy lifting
// on a background goroutine instead of the frame-scheduling goroutine that
// core.Pipeline.Run drives pads on, communicating through bounded channels.
//
// This is the goroutine-native analogue of original_source/src/sgn's
// subprocess.py, which off-loads work onto OS subprocesses communicating
// through multiprocessing.Queue and coordinates shutdown with
// multiprocessing.Event. Go has no per-goroutine SIGKILL and no equivalent
// of Python's "spawn a whole interpreter" isolation, so the translation
// keeps the queue/event vocabulary (Worker.InQueue/OutQueue, the
// stop/shutdown/terminated events) but drops the process boundary: a
// Worker's function runs as an ordinary goroutine that must itself observe
// context cancellation to stop promptly. Supervisor.Stop cannot force a
// wedged worker to die the way SubProcess.__exit__'s process.kill() can;
// past the join timeout it logs and moves on, leaving the caller's context
// cancellation as the only real lever. This divergence is recorded in
// DESIGN.md.
package subprocess
