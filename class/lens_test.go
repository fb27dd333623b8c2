package class

import (
	"errors"
	"slices"
	"testing"

	objerrors "github.com/wippyai/objective/errors"
)

func vec3(t *testing.T) *Object {
	t.Helper()
	v, err := NewObject(NewBuilder("Vec3").
		Add("x", NewValue[float32]()).
		Add("y", NewValue[float32]()).
		Add("z", NewValue[float32]()))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLens_Compose(t *testing.T) {
	foo := buildFoo(t)
	holder, err := NewObject(NewBuilder("Holder").
		Add("flag", NewValue[bool]()).
		Add("items", mustArray(t, foo, 3)))
	if err != nil {
		t.Fatal(err)
	}

	l, err := LensOf(holder).Attr("items")
	if err != nil {
		t.Fatal(err)
	}
	if l, err = l.Item(2); err != nil {
		t.Fatal(err)
	}
	if l, err = l.Attr("c"); err != nil {
		t.Fatal(err)
	}

	// items at 8, element 2 at +32, c at +12
	if l.Offset() != 52 {
		t.Errorf("offset = %d, want 52", l.Offset())
	}
	if l.Origin() != holder {
		t.Error("origin must stay the root class")
	}
	if typ, ok := l.Class().Type(); !ok || typ.Name() != "int32" {
		t.Errorf("target class = %v", l.Class())
	}
	if l.Path().String() != "items[2].c" {
		t.Errorf("path = %q", l.Path())
	}

	z, err := Zoom(holder, Path{Attr("items"), Item(2), Attr("c")})
	if err != nil {
		t.Fatal(err)
	}
	if z.Offset() != l.Offset() || z.Class() != l.Class() {
		t.Error("Zoom and chained steps disagree")
	}
}

func TestLens_Identity(t *testing.T) {
	v := vec3(t)
	l := LensOf(v)
	if l.Offset() != 0 || l.Class() != v || l.Origin() != v {
		t.Errorf("identity lens = %+v", l)
	}
	if !l.AppliesTo(v) {
		t.Error("lens must apply to its origin")
	}
	if l.AppliesTo(vec3(t)) {
		t.Error("lens must not apply to a structurally identical class")
	}
}

func TestLens_ErrorCarriesPath(t *testing.T) {
	v := vec3(t)
	p, err := NewObject(NewBuilder("Particle").Add("position", v))
	if err != nil {
		t.Fatal(err)
	}

	_, err = Zoom(p, Path{Attr("position"), Attr("w"), Attr("never")})
	if !errors.Is(err, objerrors.ErrAttribute) {
		t.Fatalf("expected attribute error, got %v", err)
	}
	var e *objerrors.Error
	if !errors.As(err, &e) {
		t.Fatal("expected *errors.Error")
	}
	if !slices.Equal(e.Path, []string{"position", "w"}) {
		t.Errorf("path = %v", e.Path)
	}

	_, err = Zoom(p, Path{Attr("position"), Attr("x"), Item(0)})
	if !errors.Is(err, objerrors.ErrType) {
		t.Errorf("indexing a leaf: got %v", err)
	}
}

func TestLens_Immutable(t *testing.T) {
	v := vec3(t)
	base := LensOf(v)
	x, _ := base.Attr("x")
	y, _ := base.Attr("y")
	if base.Offset() != 0 || len(base.Path()) != 0 {
		t.Error("extending a lens must not modify it")
	}
	if x.Offset() != 0 || y.Offset() != 4 {
		t.Errorf("x=%d y=%d", x.Offset(), y.Offset())
	}
}

func mustArray(t *testing.T, c Class, n int) *Array {
	t.Helper()
	a, err := NewArray(c, n)
	if err != nil {
		t.Fatal(err)
	}
	return a
}
