package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild     Phase = "build"     // class construction
	PhaseResolve   Phase = "resolve"   // attribute/index resolution
	PhaseApply     Phase = "apply"     // lens application
	PhaseCast      Phase = "cast"      // leaf casting
	PhaseAccess    Phase = "access"    // lock acquisition
	PhaseParse     Phase = "parse"     // path parsing
	PhaseLifecycle Phase = "lifecycle" // handle tables, teardown
)

// Kind categorizes the error
type Kind string

const (
	KindAttribute    Kind = "attribute_error"
	KindIndex        Kind = "index_error"
	KindType         Kind = "type_error"
	KindValue        Kind = "value_error"
	KindAccess       Kind = "access_error"
	KindOverflow     Kind = "overflow"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
)

// Error is the structured error type used throughout the object model.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Class  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Class != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Class != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", class ")
			b.WriteString(e.Class)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("class ")
			b.WriteString(e.Class)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Class != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must be equal; the
// phase is compared only when the target sets one.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if e.Kind != t.Kind {
			return false
		}
		return t.Phase == "" || e.Phase == t.Phase
	}
	return false
}

// Sentinels for errors.Is matching by kind.
var (
	ErrAttribute = &Error{Kind: KindAttribute}
	ErrIndex     = &Error{Kind: KindIndex}
	ErrType      = &Error{Kind: KindType}
	ErrValue     = &Error{Kind: KindValue}
	ErrAccess    = &Error{Kind: KindAccess}
	ErrOverflow  = &Error{Kind: KindOverflow}
	ErrNotFound  = &Error{Kind: KindNotFound}

	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

type cause string

func (c cause) Error() string { return string(c) }

// Causes attached to access errors.
const (
	ErrPoisoned   = cause("lock poisoned")
	ErrWouldBlock = cause("lock held")
	ErrReleased   = cause("guard released")
	ErrDestroyed  = cause("instance destroyed")
	ErrClosed     = cause("table closed")
)

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the navigation path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Class sets the class description
func (b *Builder) Class(c string) *Builder {
	b.err.Class = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// AttributeNotFound creates an error for a name missing on an aggregate.
func AttributeNotFound(class, name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindAttribute,
		Class:  class,
		Detail: fmt.Sprintf("no attribute %q", name),
		Value:  name,
	}
}

// IndexOutOfBounds creates an error for an index outside an array.
func IndexOutOfBounds(class string, index, length int) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindIndex,
		Class:  class,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Unsupported creates an error for an access kind a class does not support.
func Unsupported(class, access string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindType,
		Class:  class,
		Detail: fmt.Sprintf("%s access not supported", access),
	}
}

// OriginMismatch creates an error for a lens applied to the wrong class.
func OriginMismatch(origin, class string) *Error {
	return &Error{
		Phase:  PhaseApply,
		Kind:   KindType,
		Class:  class,
		Detail: fmt.Sprintf("lens of %s cannot be applied", origin),
	}
}

// Untyped creates an error for a cast through a class without a leaf type.
func Untyped(class string) *Error {
	return &Error{
		Phase:  PhaseCast,
		Kind:   KindType,
		Class:  class,
		Detail: "cannot cast untyped class",
	}
}

// WrongType creates an error for a cast to a type the leaf does not hold.
func WrongType(class, goType string) *Error {
	return &Error{
		Phase:  PhaseCast,
		Kind:   KindValue,
		GoType: goType,
		Class:  class,
		Detail: "leaf holds a different type",
	}
}

// Access creates an access error with the given cause.
func Access(class string, c error) *Error {
	return &Error{
		Phase: PhaseAccess,
		Kind:  KindAccess,
		Class: class,
		Cause: c,
	}
}

// Overflow creates a size arithmetic overflow error.
func Overflow(phase Phase, class, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Class:  class,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %v not found", what, key),
		Value:  key,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns err with its path replaced when err is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, path []string) error {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return err
	}
	cp := *e
	cp.Path = path
	return &cp
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
