package layout

const maxUintptr = ^uintptr(0)

// AlignTo rounds offset up to the next multiple of align. align must be zero
// or a power of two; zero leaves offset unchanged.
func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// AlignToChecked is AlignTo with overflow detection.
func AlignToChecked(offset, align uintptr) (uintptr, bool) {
	if align == 0 {
		return offset, true
	}
	sum, ok := SafeAdd(offset, align-1)
	if !ok {
		return 0, false
	}
	return sum &^ (align - 1), true
}

func SafeAdd(a, b uintptr) (uintptr, bool) {
	if a > maxUintptr-b {
		return 0, false
	}
	return a + b, true
}

func SafeMul(a, b uintptr) (uintptr, bool) {
	if b != 0 && a > maxUintptr/b {
		return 0, false
	}
	return a * b, true
}

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}
