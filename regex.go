package jsoncache

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MatchRegex matches pattern against source and inserts the text of every
// named group that took part in the match at the path spelled by the group
// name, e.g. (?P<user.id>\d+) fills user.id. It reports whether the pattern
// matched.
//
// Groups are handled in the order they appear in the pattern. A group named
// after a reserved name stops the operation with ErrReservedName; groups
// handled before it stay inserted.
func (c *DataCache) MatchRegex(pattern, source string) (bool, error) {
	re, names, err := compileCapturePattern(pattern)
	if err != nil {
		return false, err
	}
	m := re.FindStringSubmatchIndex(source)
	if m == nil {
		return false, nil
	}
	for i, sub := range re.SubexpNames() {
		if sub == "" || m[2*i] < 0 {
			continue
		}
		name := sub
		if orig, ok := names[sub]; ok {
			name = orig
		}
		if _, ok := c.reserved[name]; ok {
			return false, fmt.Errorf("%w: %q", ErrReservedName, name)
		}
		c.Insert(name, String(source[m[2*i]:m[2*i+1]]))
	}
	return true, nil
}

// compileCapturePattern compiles pattern, first renaming groups whose names
// are not plain words since RE2 only accepts [A-Za-z0-9_] there. The returned
// map takes the substitute names back to the originals.
func compileCapturePattern(pattern string) (*regexp.Regexp, map[string]string, error) {
	rewritten, names := aliasGroupNames(pattern)
	re, err := regexp.Compile(rewritten)
	if err != nil {
		return nil, nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re, names, nil
}

func aliasGroupNames(pattern string) (string, map[string]string) {
	var (
		b       strings.Builder
		names   map[string]string
		inClass bool
	)
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			b.WriteByte(c)
			if i+1 < len(pattern) {
				i++
				b.WriteByte(pattern[i])
			}
			continue
		case inClass:
			if c == '[' && strings.HasPrefix(pattern[i:], "[:") {
				if end := strings.Index(pattern[i:], ":]"); end > 0 {
					b.WriteString(pattern[i : i+end+2])
					i += end + 1
					continue
				}
			}
			if c == ']' {
				inClass = false
			}
		case c == '[':
			// A ']' right after "[" or "[^" is a literal member.
			b.WriteByte(c)
			j := i + 1
			if j < len(pattern) && pattern[j] == '^' {
				b.WriteByte('^')
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				b.WriteByte(']')
				j++
			}
			i = j - 1
			inClass = true
			continue
		case c == '(':
			open := ""
			switch {
			case strings.HasPrefix(pattern[i:], "(?P<"):
				open = "(?P<"
			case strings.HasPrefix(pattern[i:], "(?<"):
				open = "(?<"
			}
			if open == "" {
				break
			}
			rest := pattern[i+len(open):]
			end := strings.IndexByte(rest, '>')
			if end <= 0 || isWordName(rest[:end]) {
				break
			}
			if names == nil {
				names = map[string]string{}
			}
			alias := freshGroupName(pattern, names)
			names[alias] = rest[:end]
			b.WriteString(open)
			b.WriteString(alias)
			b.WriteByte('>')
			i += len(open) + end
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), names
}

func freshGroupName(pattern string, taken map[string]string) string {
	for n := len(taken); ; n++ {
		alias := "jsoncache_" + strconv.Itoa(n)
		if _, used := taken[alias]; !used && !strings.Contains(pattern, alias) {
			return alias
		}
	}
}

func isWordName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
