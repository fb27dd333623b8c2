package instance

import (
	"errors"
	"runtime"
	"strconv"
	"testing"

	"github.com/wippyai/objective/class"
	objerrors "github.com/wippyai/objective/errors"
)

func TestValueRoundTrip(t *testing.T) {
	inst := New(class.NewValue(class.WithDefault(uint16(7))))
	defer inst.Close()

	w, err := inst.Write()
	if err != nil {
		t.Fatal(err)
	}
	if v, err := Load[uint16](w); err != nil || v != 7 {
		t.Fatalf("default = %d, %v", v, err)
	}
	p, err := Cast[uint16](w)
	if err != nil {
		t.Fatal(err)
	}
	*p = 300
	w.Release()

	r, err := inst.Read()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()
	if v, err := Load[uint16](r); err != nil || v != 300 {
		t.Errorf("Load = %d, %v", v, err)
	}
	if v, err := r.Root().Interface(); err != nil || v != uint16(300) {
		t.Errorf("Interface = %v, %v", v, err)
	}
}

func TestObjectMembersAreIsolated(t *testing.T) {
	inst := New(fooClass(t))
	defer inst.Close()

	err := inst.Update(func(w *WriteGuard) error {
		a, _ := w.Attr("a")
		b, _ := w.Attr("b")
		c, _ := w.Attr("c")
		if err := Store(a, uint64(1<<40)); err != nil {
			return err
		}
		if err := Store(b, int32(-2)); err != nil {
			return err
		}
		return Store(c, int32(3))
	})
	if err != nil {
		t.Fatal(err)
	}

	err = inst.View(func(r *ReadGuard) error {
		want := map[string]any{"a": uint64(1 << 40), "b": int32(-2), "c": int32(3)}
		for name, v := range want {
			ref, err := r.Attr(name)
			if err != nil {
				return err
			}
			got, err := ref.Interface()
			if err != nil {
				return err
			}
			if got != v {
				t.Errorf("%s = %v, want %v", name, got, v)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestArrayElements(t *testing.T) {
	foo := fooClass(t)
	arr, err := class.NewArray(foo, 3)
	if err != nil {
		t.Fatal(err)
	}
	inst := New(arr)
	defer inst.Close()

	w, err := inst.Write()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		b, err := w.Path(class.Path{class.Item(i), class.Attr("b")})
		if err != nil {
			t.Fatal(err)
		}
		if err := b.Set(int32(i * 10)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := w.Item(3); !errors.Is(err, objerrors.ErrIndex) {
		t.Errorf("Item(3): %v", err)
	}
	w.Release()

	r, err := inst.Read()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()
	for i := 0; i < 3; i++ {
		e, _ := r.Item(i)
		b, err := e.Attr("b")
		if err != nil {
			t.Fatal(err)
		}
		if v, _ := Load[int32](b); v != int32(i*10) {
			t.Errorf("items[%d].b = %d", i, v)
		}
		if b.Offset() != uintptr(i)*16+8 {
			t.Errorf("items[%d].b at %d", i, b.Offset())
		}
		if b.Location().String() != "["+strconv.Itoa(i)+"].b" {
			t.Errorf("location = %s", b.Location())
		}
	}
}

func TestThroughLens(t *testing.T) {
	foo := fooClass(t)
	twin := fooClass(t)
	holder, err := class.NewObject(class.NewBuilder("Holder").Add("flag", class.NewValue[bool]()).Add("foo", foo))
	if err != nil {
		t.Fatal(err)
	}

	lens, err := class.LensOf(foo).Attr("c")
	if err != nil {
		t.Fatal(err)
	}

	inst := New(holder)
	defer inst.Close()
	w, err := inst.Write()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Release()

	inner, err := w.Attr("foo")
	if err != nil {
		t.Fatal(err)
	}
	c, err := inner.Through(lens)
	if err != nil {
		t.Fatal(err)
	}
	if err := Store(c, int32(42)); err != nil {
		t.Fatal(err)
	}
	if c.Offset() != 8+12 || c.Location().String() != "foo.c" {
		t.Errorf("through lens: offset %d, location %s", c.Offset(), c.Location())
	}

	direct, _ := w.Path(class.Path{class.Attr("foo"), class.Attr("c")})
	if v, _ := Load[int32](direct); v != 42 {
		t.Errorf("foo.c = %d", v)
	}

	// same structure, different identity
	wrong, _ := class.LensOf(twin).Attr("c")
	if _, err := inner.Through(wrong); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("lens of twin class: %v", err)
	}
	if _, err := w.Through(lens); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("lens applied at root: %v", err)
	}
}

func TestCastErrors(t *testing.T) {
	inst := New(fooClass(t))
	defer inst.Close()
	w, err := inst.Write()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Release()

	if _, err := Cast[uint64](w); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("cast of aggregate: %v", err)
	}
	b, _ := w.Attr("b")
	if _, err := Cast[uint32](b); !errors.Is(err, objerrors.ErrValue) {
		t.Errorf("cast to wrong type: %v", err)
	}
	if err := b.Set("seven"); !errors.Is(err, objerrors.ErrValue) {
		t.Errorf("Set with wrong type: %v", err)
	}
	if err := b.Set(nil); !errors.Is(err, objerrors.ErrValue) {
		t.Errorf("Set(nil): %v", err)
	}
	if _, err := w.Root().Interface(); !errors.Is(err, objerrors.ErrType) {
		t.Errorf("Interface of aggregate: %v", err)
	}
	if _, err := w.Attr("missing"); !errors.Is(err, objerrors.ErrAttribute) {
		t.Errorf("missing attribute: %v", err)
	}
}

func TestReleasedGuard(t *testing.T) {
	inst := New(fooClass(t))
	defer inst.Close()

	r, err := inst.Read()
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Attr("b")
	if err != nil {
		t.Fatal(err)
	}
	r.Release()

	if _, err := Load[int32](b); !errors.Is(err, objerrors.ErrReleased) {
		t.Errorf("Load after release: %v", err)
	}
	if _, err := r.Attr("a"); !errors.Is(err, objerrors.ErrReleased) {
		t.Errorf("Attr after release: %v", err)
	}
	if _, err := b.Interface(); !errors.Is(err, objerrors.ErrAccess) {
		t.Errorf("Interface after release: %v", err)
	}

	w, err := inst.Write()
	if err != nil {
		t.Fatal(err)
	}
	c, _ := w.Attr("c")
	w.Release()
	if err := Store(c, int32(1)); !errors.Is(err, objerrors.ErrReleased) {
		t.Errorf("Store after release: %v", err)
	}
}

func TestStringsSurviveGC(t *testing.T) {
	rec, err := class.NewObject(class.NewBuilder("Named").
		Add("id", class.NewValue[uint8]()).
		Add("name", class.NewValue[string]()).
		Add("tags", class.NewValue[[]string]()))
	if err != nil {
		t.Fatal(err)
	}
	inst := New(rec)
	defer inst.Close()

	err = inst.Update(func(w *WriteGuard) error {
		name, _ := w.Attr("name")
		tags, _ := w.Attr("tags")
		if err := Store(name, strconv.Itoa(123456789)+"-heap"); err != nil {
			return err
		}
		return Store(tags, []string{strconv.Itoa(1) + "x", strconv.Itoa(2) + "y"})
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		runtime.GC()
		_ = make([]byte, 1<<20)
	}

	r, err := inst.Read()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()
	name, _ := r.Attr("name")
	if v, _ := Load[string](name); v != "123456789-heap" {
		t.Errorf("name = %q", v)
	}
	tags, _ := r.Attr("tags")
	if v, _ := Load[[]string](tags); len(v) != 2 || v[0] != "1x" || v[1] != "2y" {
		t.Errorf("tags = %v", v)
	}
}
