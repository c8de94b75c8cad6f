package overlay

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// internalMarker prefixes command names reserved for internal use. Names
// carrying it are never accepted from the wire.
const internalMarker = "_"

// Errors reported by argument coercion and command dispatch.
var (
	// ErrNoSurface is returned by direct lifecycle calls when no Surface is
	// attached. Queued commands are silently dropped instead.
	ErrNoSurface = errors.New("overlay: no surface attached")

	// ErrBadArgument indicates an argument of the wrong shape or type.
	ErrBadArgument = errors.New("overlay: bad argument")

	// ErrUnknownCommand indicates a name outside the closed command set.
	ErrUnknownCommand = errors.New("overlay: unknown command")
)

// Args is the ordered argument list of one command. Values arrive as loosely
// typed wire data (JSON numbers decode as float64); the accessors below
// coerce them into the shapes handlers expect.
type Args []any

// Int returns argument i as an integer.
func (a Args) Int(i int) (int, error) {
	if i >= len(a) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}
	switch v := a[i].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: argument %d: %T is not a number", ErrBadArgument, i, a[i])
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	if i >= len(a) {
		return "", fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}
	s, ok := a[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d: %T is not a string", ErrBadArgument, i, a[i])
	}
	return s, nil
}

// Bool returns argument i as a boolean. Numeric arguments coerce with the
// usual nonzero-is-true rule, since some senders encode flags as 0/1.
func (a Args) Bool(i int) (bool, error) {
	if i >= len(a) {
		return false, fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}
	switch v := a[i].(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}
	return false, fmt.Errorf("%w: argument %d: %T is not a bool", ErrBadArgument, i, a[i])
}

// Bytes returns argument i as raw bytes. String arguments are decoded as
// base64, matching how image payloads travel over JSON transports.
func (a Args) Bytes(i int) ([]byte, error) {
	if i >= len(a) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}
	switch v := a[i].(type) {
	case []byte:
		return v, nil
	case string:
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrBadArgument, i, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: argument %d: %T is not a byte payload", ErrBadArgument, i, a[i])
}

// Map returns argument i as a string-keyed map, or nil if the argument is
// absent or nil. Used for the optional model argument of overlay_set_group.
func (a Args) Map(i int) (map[string]any, error) {
	if i >= len(a) || a[i] == nil {
		return nil, nil
	}
	m, ok := a[i].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d: %T is not a map", ErrBadArgument, i, a[i])
	}
	return m, nil
}

// commandSpec is one entry in the closed command table. The barrier bit is a
// capability of the entry, not of the handler: barrier commands are withheld
// by the sequencer until the preceding call id has been processed.
type commandSpec struct {
	barrier bool
	minArgs int
	run     func(e *Engine, args Args) error
}

// commandTable is the closed set of wire commands. Lookup by name is the only
// dispatch mechanism; there is no reflection and no way to reach unlisted
// methods from the wire.
var commandTable = map[string]commandSpec{
	"overlay_rect":           {minArgs: 7, run: (*Engine).cmdRect},
	"overlay_line":           {minArgs: 7, run: (*Engine).cmdLine},
	"overlay_text":           {minArgs: 9, run: (*Engine).cmdText},
	"overlay_image":          {minArgs: 4, run: (*Engine).cmdImage},
	"overlay_set_group":      {minArgs: 1, run: (*Engine).cmdSetGroup},
	"overlay_set_group_z":    {minArgs: 2, run: (*Engine).cmdSetGroupZ},
	"overlay_move_group":     {minArgs: 2, run: (*Engine).cmdMoveGroup},
	"overlay_clear_group":    {barrier: true, minArgs: 1, run: (*Engine).cmdClearGroup},
	"overlay_freeze_group":   {barrier: true, minArgs: 1, run: (*Engine).cmdFreezeGroup},
	"overlay_continue_group": {barrier: true, minArgs: 1, run: (*Engine).cmdContinueGroup},
	"overlay_refresh_group":  {barrier: true, minArgs: 1, run: (*Engine).cmdRefreshGroup},
}

// lookupCommand resolves a wire name against the table. Marker-prefixed and
// unknown names are protocol violations: they are rejected here and never
// enqueued or executed.
func lookupCommand(name string) (commandSpec, error) {
	if strings.HasPrefix(name, internalMarker) {
		return commandSpec{}, fmt.Errorf("%w: %q is internal", ErrUnknownCommand, name)
	}
	spec, ok := commandTable[name]
	if !ok {
		return commandSpec{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return spec, nil
}
