package util

import "strings"

// Kebab converts a camelCase identifier to kebab-case by replacing each
// upper-case ASCII letter by a hyphen followed by its lower-case
// counterpart. Other bytes are left untouched, so that
//
//	Kebab("scriptSrcAttr") == "script-src-attr"
//	Kebab("script-src-attr") == "script-src-attr"
//
// Note that a leading upper-case letter produces a leading hyphen.
func Kebab(str string) string {
	var n int
	for i := 0; i < len(str); i++ {
		if isUpper(str[i]) {
			n++
		}
	}
	if n == 0 {
		return str
	}
	var b strings.Builder
	b.Grow(len(str) + n)
	for i := 0; i < len(str); i++ {
		c := str[i]
		if isUpper(c) {
			b.WriteByte('-')
			c += toLower
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}
