package sz

import "unsafe"

// stringBytes returns the bytes of s without copying. The result must never
// be written; strings that hold it are created in aliasing mode.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// overlaps reports whether b points into the reserved region of buf.
func overlaps(buf, b []byte) bool {
	if cap(buf) == 0 || len(b) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	hi := lo + uintptr(cap(buf))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return p < hi && p+uintptr(len(b)) > lo
}
