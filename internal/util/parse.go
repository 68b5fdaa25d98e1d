package util

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingIntRegex = regexp.MustCompile(`^[+-]?\d+`)

// ParseLeadingInt parses the integer at the start of s, ignoring leading
// whitespace and anything after the digits ("5 units" -> 5).
func ParseLeadingInt(s string) (int, bool) {
	m := leadingIntRegex.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	i, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return i, true
}
