package list

// ScanForward finds the first eligible index after start, wrapping modulo
// count. wrapped is true when the found index is not after start. A start of
// -1 scans from the beginning.
func ScanForward(start, count int, valid func(int) bool) (index int, wrapped, ok bool) {
	if count <= 0 {
		return -1, false, false
	}
	if start >= count {
		start = count - 1
	}
	for i := 1; i <= count; i++ {
		idx := mod(start+i, count)
		if valid == nil || valid(idx) {
			return idx, idx <= start, true
		}
	}
	return -1, false, false
}

// ScanBackward finds the first eligible index before start, wrapping modulo
// count. wrapped is true when the found index is not before start. A start
// of count scans from the end.
func ScanBackward(start, count int, valid func(int) bool) (index int, wrapped, ok bool) {
	if count <= 0 {
		return -1, false, false
	}
	if start > count {
		start = count
	}
	if start < 0 {
		start = 0
	}
	for i := 1; i <= count; i++ {
		idx := mod(start-i, count)
		if valid == nil || valid(idx) {
			return idx, idx >= start, true
		}
	}
	return -1, false, false
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
