package util

// An ASCIISet represents a set of ASCII bytes.
type ASCIISet [8]uint32

// MakeASCIISet creates a set of ASCII characters.
// All bytes in chars are assumed to be less than utf8.RuneSelf.
// This implementation is adapted from that of the strings package.
func MakeASCIISet(chars string) ASCIISet {
	var as ASCIISet
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// Contains reports whether c is inside the set.
func (as *ASCIISet) Contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}

// ContainsAll reports whether str is non-empty and consists exclusively
// of bytes that belong to the set.
func (as *ASCIISet) ContainsAll(str string) bool {
	if len(str) == 0 {
		return false
	}
	for i := 0; i < len(str); i++ {
		if !as.Contains(str[i]) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one byte of str belongs to the set.
func (as *ASCIISet) ContainsAny(str string) bool {
	for i := 0; i < len(str); i++ {
		if as.Contains(str[i]) {
			return true
		}
	}
	return false
}
