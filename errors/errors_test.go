package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCast,
				Kind:   KindValue,
				Path:   []string{"items", "[2]", "b"},
				GoType: "int64",
				Class:  "int32",
				Detail: "leaf holds a different type",
			},
			contains: []string{"[cast]", "value_error", "items.[2].b", "int64", "int32", "different type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseResolve,
				Kind:  KindIndex,
			},
			contains: []string{"[resolve]", "index_error"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindAccess,
				Class: "Foo",
				Cause: ErrPoisoned,
			},
			contains: []string{"[access]", "access_error", "class Foo", "caused by", "lock poisoned"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := Access("Foo", ErrReleased)

	if !errors.Is(err, ErrReleased) {
		t.Error("errors.Is did not find cause")
	}
	if errors.Is(err, ErrPoisoned) {
		t.Error("errors.Is matched unrelated cause")
	}
	if !errors.Is(errors.Unwrap(err), ErrReleased) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := AttributeNotFound("Foo", "x")

	if !errors.Is(err, ErrAttribute) {
		t.Error("Is should match sentinel of same kind")
	}
	if !errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindAttribute}) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseCast, Kind: KindAttribute}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, ErrIndex) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindAttribute).
		Path("position", "w").
		Class("Vec3").
		GoType("float32").
		Value("w").
		Cause(cause).
		Detail("no attribute %q", "w").
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindAttribute {
		t.Errorf("Kind = %v, want %v", err.Kind, KindAttribute)
	}
	if len(err.Path) != 2 || err.Path[0] != "position" || err.Path[1] != "w" {
		t.Errorf("Path = %v, want [position w]", err.Path)
	}
	if err.Class != "Vec3" {
		t.Errorf("Class = %v, want Vec3", err.Class)
	}
	if err.GoType != "float32" {
		t.Errorf("GoType = %v, want float32", err.GoType)
	}
	if err.Value != "w" {
		t.Errorf("Value = %v, want w", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `no attribute "w"` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"AttributeNotFound", AttributeNotFound("Foo", "x"), PhaseResolve, KindAttribute},
		{"IndexOutOfBounds", IndexOutOfBounds("Foo[3]", 3, 3), PhaseResolve, KindIndex},
		{"Unsupported", Unsupported("int32", "attribute"), PhaseResolve, KindType},
		{"OriginMismatch", OriginMismatch("Foo", "Bar"), PhaseApply, KindType},
		{"Untyped", Untyped("Foo"), PhaseCast, KindType},
		{"WrongType", WrongType("int32", "uint64"), PhaseCast, KindValue},
		{"Access", Access("Foo", ErrDestroyed), PhaseAccess, KindAccess},
		{"Overflow", Overflow(PhaseBuild, "Foo", "size"), PhaseBuild, KindOverflow},
		{"InvalidInput", InvalidInput(PhaseParse, "bad"), PhaseParse, KindInvalidInput},
		{"NotFound", NotFound(PhaseLifecycle, "handle", 3), PhaseLifecycle, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestWithPath(t *testing.T) {
	orig := IndexOutOfBounds("u8[4]", 9, 4)
	err := WithPath(orig, []string{"tags", "[9]"})

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("WithPath lost *Error")
	}
	if strings.Join(e.Path, ".") != "tags.[9]" {
		t.Errorf("Path = %v", e.Path)
	}
	if orig.Path != nil {
		t.Error("WithPath mutated the original error")
	}

	plain := errors.New("plain")
	if WithPath(plain, []string{"x"}) != plain {
		t.Error("WithPath should return foreign errors unchanged")
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(Untyped("Foo")); k != KindType {
		t.Errorf("KindOf = %v, want %v", k, KindType)
	}
	wrapped := Wrap(PhaseLifecycle, KindNotFound, Untyped("Foo"), "lookup")
	if k := KindOf(wrapped); k != KindNotFound {
		t.Errorf("KindOf = %v, want outermost kind %v", k, KindNotFound)
	}
	if k := KindOf(errors.New("plain")); k != "" {
		t.Errorf("KindOf(plain) = %v, want empty", k)
	}
	if k := KindOf(nil); k != "" {
		t.Errorf("KindOf(nil) = %v, want empty", k)
	}
}
