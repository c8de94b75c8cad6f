// Package overlay implements the command protocol and group lifecycle engine
// behind transient on-screen annotations for game automation add-ons.
//
// # Overview
//
// An untrusted scripting environment sends a stream of sequenced draw and
// control commands. The engine orders them, withholds barrier-marked commands
// until the preceding call id has completed, and manages named groups of
// visual primitives: creation, timeout-driven expiry, freeze/continue
// transitions, template text refresh, re-parenting and re-stacking.
//
// The engine never paints anything itself. It drives a Surface — a retained
// rendering collaborator that creates rectangle, line, text and image items,
// aggregates them into groups, and reports their bounds. The scene subpackage
// provides an in-memory reference Surface; real deployments supply one backed
// by a transparent compositor window.
//
// # Quick Start
//
//	loop := overlay.NewLoop()
//	defer loop.Stop()
//
//	eng := overlay.NewEngine(
//		overlay.WithSurface(myScene),
//		overlay.WithScheduler(loop),
//	)
//
//	// Feed commands from the transport. Call ids order the stream.
//	loop.Post(func() {
//		eng.Enqueue(1, "overlay_rect", 0xFF0000FF, 10, 10, 50, 50, 5000, 10)
//	})
//
// # Concurrency
//
// Engine state is single-threaded by design. All calls into an Engine must be
// made on its Scheduler — in practice, posted onto one Loop. Timer-driven
// group expiry is scheduled through the same Scheduler, so every mutation is
// serialized onto one worker and the engine needs no locks.
//
// # Command Set
//
// The wire command set is closed: overlay_rect, overlay_line, overlay_text,
// overlay_image, overlay_set_group, overlay_clear_group, overlay_freeze_group,
// overlay_continue_group, overlay_refresh_group, overlay_move_group and
// overlay_set_group_z. Unknown names and names carrying the internal-use
// marker prefix are rejected before they reach the queue.
package overlay

// Version is the current version of the library.
const Version = "0.1.0"
