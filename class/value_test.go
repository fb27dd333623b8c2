package class

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	objerrors "github.com/wippyai/objective/errors"
)

type closer struct {
	closed *int
	name   string
}

func (c *closer) Destroy() { *c.closed++ }

func slotOf[T any](p *T) Slot {
	return NewSlot(unsafe.Pointer(p), unsafe.Sizeof(*p))
}

func TestValue_Descriptor(t *testing.T) {
	v := NewValue[int32]()
	if v.Size() != 4 || v.Align() != 4 {
		t.Errorf("int32 layout = %v", v.Layout())
	}
	typ, ok := v.Type()
	if !ok || typ != reflect.TypeFor[int32]() {
		t.Errorf("Type() = %v, %v", typ, ok)
	}
	if v.Shape() != typ {
		t.Error("Shape should be the leaf type")
	}
	if v.String() != "int32" {
		t.Errorf("String() = %q", v.String())
	}
	if NewValue[int32]().ID() == v.ID() {
		t.Error("separately built values must have distinct IDs")
	}
}

func TestValue_ConstructDefault(t *testing.T) {
	var n int64 = 99
	NewValue[int64]().Construct(slotOf(&n))
	if n != 0 {
		t.Errorf("expected zero value, got %d", n)
	}

	s := "stale"
	NewValue(WithDefault("fresh")).Construct(slotOf(&s))
	if s != "fresh" {
		t.Errorf("expected default, got %q", s)
	}
}

func TestValue_Destroy(t *testing.T) {
	closed := 0
	v := NewValue(WithDefault(closer{closed: &closed, name: "x"}))

	var c closer
	slot := slotOf(&c)
	v.Construct(slot)
	if c.name != "x" {
		t.Fatalf("construct did not write default: %+v", c)
	}
	v.Destroy(slot)
	if closed != 1 {
		t.Errorf("expected Destroy hook to run once, ran %d", closed)
	}
	if c != (closer{}) {
		t.Errorf("expected zeroed slot, got %+v", c)
	}
}

func TestValue_NoAccess(t *testing.T) {
	v := NewValue[float64]()
	if _, err := v.Attr("x"); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("Attr: expected type error, got %v", err)
	}
	if _, err := v.Item(0); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("Item: expected type error, got %v", err)
	}
}

func TestValue_ConstructPanicsOnSmallSlot(t *testing.T) {
	var b [2]byte
	expectPanic(t, "small slot", func() {
		NewValue[uint64]().Construct(NewSlot(unsafe.Pointer(&b), 2))
	})
}
