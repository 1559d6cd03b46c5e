package trigger

import (
	"errors"
	"fmt"
)

// Sentinel errors for the configuration-time failure cases. Generation
// either completes fully or fails fast on the first of these; partial output
// is never valid.
var (
	// ErrUnresolvablePath indicates a path segment that names neither a
	// relation nor a column on the table reached so far.
	ErrUnresolvablePath = errors.New("trigwatch: unresolvable path")
	// ErrUnknownTable indicates a reference to a table absent from the
	// schema graph.
	ErrUnknownTable = errors.New("trigwatch: unknown table")
	// ErrAmbiguousTrigger indicates two generators producing the same
	// trigger name.
	ErrAmbiguousTrigger = errors.New("trigwatch: ambiguous trigger name")
	// ErrNoGID indicates a direct root table without a global-id column.
	ErrNoGID = errors.New("trigwatch: missing gid column")
)

// UnresolvablePathError reports the exact segment at which path resolution
// failed.
type UnresolvablePathError struct {
	Root    string // root table the walk started at
	Path    string // the full dotted path
	Segment string // the segment that resolved to nothing
	Table   string // the table the segment was looked up on
}

func (e *UnresolvablePathError) Error() string {
	return fmt.Sprintf("trigwatch: path %q from %s: segment %q names neither a relation nor a column on %s",
		e.Path, e.Root, e.Segment, e.Table)
}

// Is reports whether the target matches the sentinel for this error.
func (e *UnresolvablePathError) Is(target error) bool {
	return target == ErrUnresolvablePath
}

// UnknownTableError reports a reference to a table the graph does not
// contain. A non-empty Relation means a relation edge points at the missing
// table, which indicates a malformed input graph.
type UnknownTableError struct {
	Table    string
	Relation string
}

func (e *UnknownTableError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("trigwatch: relation %q targets unknown table %q", e.Relation, e.Table)
	}
	return fmt.Sprintf("trigwatch: unknown table %q", e.Table)
}

// Is reports whether the target matches the sentinel for this error.
func (e *UnknownTableError) Is(target error) bool {
	return target == ErrUnknownTable
}

// AmbiguousTriggerError reports a trigger name emitted twice within one
// generation pass.
type AmbiguousTriggerError struct {
	Name  string
	Table string
}

func (e *AmbiguousTriggerError) Error() string {
	return fmt.Sprintf("trigwatch: trigger name %q generated twice (table %s)", e.Name, e.Table)
}

// Is reports whether the target matches the sentinel for this error.
func (e *AmbiguousTriggerError) Is(target error) bool {
	return target == ErrAmbiguousTrigger
}

// IsUnresolvablePath reports whether err is an UnresolvablePathError.
func IsUnresolvablePath(err error) bool {
	return errors.Is(err, ErrUnresolvablePath)
}

// IsUnknownTable reports whether err is an UnknownTableError.
func IsUnknownTable(err error) bool {
	return errors.Is(err, ErrUnknownTable)
}

// IsAmbiguousTrigger reports whether err is an AmbiguousTriggerError.
func IsAmbiguousTrigger(err error) bool {
	return errors.Is(err, ErrAmbiguousTrigger)
}
