package overlay

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/gogpu/overlay/cache"
)

// Timeout bounds for active groups, in milliseconds. Requests outside the
// range are clamped; a request of zero or less freezes the group instead.
const (
	MinTimeout = 1
	MaxTimeout = 20000

	// DefaultTimeout is applied when a frozen group is continued without an
	// explicit timeout.
	DefaultTimeout = 20000
)

// EventHideGroup is emitted through the events hook when an active group is
// removed, either explicitly or by timeout expiry.
const EventHideGroup = "hide-group"

// pendingCommand is one enqueued wire command awaiting dispatch.
type pendingCommand struct {
	id   int64
	name string
	spec commandSpec
	args Args
}

// group is one named collection of primitives filed in a registry. The
// timeout is the clamped value in milliseconds; frozen groups store zero.
type group struct {
	handle  Item
	timeout int
}

// Engine receives the sequenced command stream and owns all overlay state:
// the pending queue, the active and frozen group registries, the group
// context stack and the bound text models.
//
// Engine is not safe for concurrent use. Every call must happen on the
// configured Scheduler's worker; see the package documentation.
type Engine struct {
	surface Surface
	window  Window
	sched   Scheduler
	events  func(kind, group string)

	pending []pendingCommand
	lastID  int64
	hasLast bool

	stack  groupStack
	active map[string]*group
	frozen map[string]*group
	models map[string]*Model

	// text tracks template state per text item so model rebinds can
	// re-evaluate displayed strings.
	text map[Item]*textState

	// stopPointer detaches the current pointer-follow listener, if any.
	stopPointer func()
	// moveX, moveY remember the last pointer-follow position per group.
	moveX, moveY map[string]float64

	images *cache.Cache[uint64, image.Image]
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSurface attaches the rendering surface. Without one, every
// overlay-affecting entry point is a guarded no-op.
func WithSurface(s Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithWindow attaches the windowing collaborator used by pointer-follow
// groups. Without one, overlay_move_group is a no-op.
func WithWindow(w Window) Option {
	return func(e *Engine) { e.window = w }
}

// WithScheduler sets the deferred-execution backend. Defaults to a new Loop.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithEvents registers a hook for engine notifications such as
// EventHideGroup. The hook is invoked on the scheduler worker.
func WithEvents(fn func(kind, group string)) Option {
	return func(e *Engine) { e.events = fn }
}

// WithImageCacheSize bounds the decoded-image memo cache. Defaults to
// DefaultImageCacheSize entries.
func WithImageCacheSize(n int) Option {
	return func(e *Engine) { e.images = cache.New[uint64, image.Image](n) }
}

// NewEngine creates an engine. A Surface must be attached (here or never)
// for the engine to do anything; a nil surface turns all overlay entry
// points into no-ops rather than errors, since the overlay window may
// legitimately be unavailable on some platforms.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		active: make(map[string]*group),
		frozen: make(map[string]*group),
		models: make(map[string]*Model),
		text:   make(map[Item]*textState),
		moveX:  make(map[string]float64),
		moveY:  make(map[string]float64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.sched = NewLoop()
	}
	if e.images == nil {
		e.images = cache.New[uint64, image.Image](DefaultImageCacheSize)
	}
	return e
}

// Enqueue accepts one wire command. Commands are buffered sorted by call id
// and drained asynchronously; barrier commands wait for their predecessor.
//
// A callID of zero is the reset signal: it clears the pending queue, both
// registries, the context stack, the bound models and the sequencer position
// before the reset command itself is enqueued.
//
// Unknown and marker-prefixed names are rejected here — logged, never
// executed. Enqueue is a no-op without an attached surface.
func (e *Engine) Enqueue(callID int64, command string, args ...any) {
	if e.surface == nil {
		return
	}
	spec, err := lookupCommand(command)
	if err != nil {
		Logger().Warn("overlay: rejected command", "call_id", callID, "command", command, "err", err)
		return
	}

	if callID == 0 {
		Logger().Info("overlay: call id reset")
		e.reset()
	}

	e.pending = append(e.pending, pendingCommand{id: callID, name: command, spec: spec, args: Args(args)})
	slices.SortStableFunc(e.pending, func(a, b pendingCommand) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	Logger().Debug("overlay: enqueue", "call_id", callID, "command", command, "args", argsPreview(args))

	// Drain on a zero-delay deferred callback so a burst of enqueues
	// coalesces into one pass and callers never reenter the drain loop.
	e.sched.Post(e.processQueue)
}

// processQueue drains the pending list in call id order. A barrier-marked
// head whose call id is not exactly one past the last processed id stops the
// drain: the missing predecessor is still in flight. Non-barrier heads run
// regardless of gaps.
func (e *Engine) processQueue() {
	for len(e.pending) > 0 {
		head := e.pending[0]
		if head.spec.barrier && e.hasLast && head.id != e.lastID+1 {
			Logger().Debug("overlay: holding barrier", "call_id", head.id, "command", head.name, "last", e.lastID)
			return
		}
		e.pending = e.pending[1:]
		e.lastID = head.id
		e.hasLast = true
		e.dispatch(head.id, head.name, head.spec, head.args)
	}
}

// dispatch runs one command inside the failure boundary. Any fault — a
// returned error or a panic — is logged with the call id, command and
// arguments and does not abort the drain loop. The command still counts as
// processed for ordering purposes.
func (e *Engine) dispatch(id int64, name string, spec commandSpec, args Args) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("overlay: command panic",
				"call_id", id, "command", name, "args", argsPreview(args), "panic", r)
		}
	}()

	if len(args) < spec.minArgs {
		Logger().Error("overlay: command fault",
			"call_id", id, "command", name, "args", argsPreview(args),
			"err", fmt.Errorf("%w: want %d arguments, got %d", ErrBadArgument, spec.minArgs, len(args)))
		return
	}
	if err := spec.run(e, args); err != nil {
		Logger().Error("overlay: command fault",
			"call_id", id, "command", name, "args", argsPreview(args), "err", err)
	}
}

// Batch runs a list of commands with no ordering or barrier semantics: they
// fire in the given order, each inside its own failure boundary. Used when
// the caller already guarantees ordering out of band.
func (e *Engine) Batch(commands []BatchEntry) {
	if e.surface == nil {
		return
	}
	for _, c := range commands {
		spec, err := lookupCommand(c.Command)
		if err != nil {
			Logger().Warn("overlay: rejected batch command", "command", c.Command, "err", err)
			continue
		}
		e.dispatch(0, c.Command, spec, Args(c.Args))
	}
}

// BatchEntry is one command of a Batch call.
type BatchEntry struct {
	Command string
	Args    []any
}

// LastProcessed reports the call id of the most recently completed command.
// ok is false if nothing has been processed since creation or the last reset.
func (e *Engine) LastProcessed() (id int64, ok bool) {
	return e.lastID, e.hasLast
}

// PendingLen reports how many commands are buffered awaiting dispatch.
func (e *Engine) PendingLen() int {
	return len(e.pending)
}

// reset discards all engine state: pending commands, every group in both
// registries (their primitives are removed from the surface), the context
// stack, bound models and the sequencer position. Scheduled expiry callbacks
// become no-ops when they fire because their groups are gone.
func (e *Engine) reset() {
	for name, g := range e.active {
		e.dropTextStates(g.handle)
		e.surface.Remove(g.handle)
		delete(e.active, name)
	}
	for name, g := range e.frozen {
		e.dropTextStates(g.handle)
		e.surface.Remove(g.handle)
		delete(e.frozen, name)
	}
	e.pending = nil
	e.hasLast = false
	e.lastID = 0
	e.stack.Clear()
	clear(e.models)
	clear(e.moveX)
	clear(e.moveY)
	if e.stopPointer != nil {
		e.stopPointer()
		e.stopPointer = nil
	}
}

// emit delivers an engine notification to the events hook, if any.
func (e *Engine) emit(kind, group string) {
	if e.events != nil {
		e.events(kind, group)
	}
}

// argsPreview truncates argument lists for log output so image payloads do
// not flood the log.
func argsPreview(args []any) slog.Value {
	const limit = 180
	s := fmt.Sprintf("%v", args)
	if len(s) > limit {
		s = s[:limit] + "…"
	}
	return slog.StringValue(s)
}
