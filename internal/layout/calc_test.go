package layout

import (
	"testing"
)

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 4, 12},
		{12, 4, 12},
		{5, 1, 5},
		{7, 0, 7},
	}

	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
		got, ok := AlignToChecked(tc.offset, tc.align)
		if !ok || got != tc.want {
			t.Errorf("AlignToChecked(%d, %d) = %d, %v, want %d", tc.offset, tc.align, got, ok, tc.want)
		}
	}
}

func TestAlignToCheckedOverflow(t *testing.T) {
	if _, ok := AlignToChecked(maxUintptr-2, 8); ok {
		t.Error("expected overflow")
	}
}

func TestSafeArithmetic(t *testing.T) {
	if v, ok := SafeAdd(3, 4); !ok || v != 7 {
		t.Errorf("SafeAdd(3, 4) = %d, %v", v, ok)
	}
	if _, ok := SafeAdd(maxUintptr, 1); ok {
		t.Error("SafeAdd should overflow")
	}
	if v, ok := SafeMul(6, 7); !ok || v != 42 {
		t.Errorf("SafeMul(6, 7) = %d, %v", v, ok)
	}
	if v, ok := SafeMul(maxUintptr, 0); !ok || v != 0 {
		t.Errorf("SafeMul(max, 0) = %d, %v", v, ok)
	}
	if _, ok := SafeMul(maxUintptr/2+1, 2); ok {
		t.Error("SafeMul should overflow")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []uintptr{1, 2, 4, 8, 16, 1 << 20} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []uintptr{0, 3, 6, 12, 1<<20 + 1} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
}
