package matcher

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// undefinedGroup scans a replacement template the way regexp.Expand does and
// returns the first reference to a group that re does not define.
//
// $$ is a literal dollar. $name and ${name} take the longest run of letters,
// digits and underscores; a run of digits without a leading zero is a group
// number. A $ not followed by a valid reference is copied literally and is
// not an error.
func undefinedGroup(re *regexp.Regexp, template string) (string, bool) {
	for len(template) > 0 {
		i := indexDollar(template)
		if i < 0 {
			break
		}
		template = template[i+1:]
		if len(template) > 0 && template[0] == '$' {
			template = template[1:]
			continue
		}
		name, rest, ok := reference(template)
		if !ok {
			continue
		}
		template = rest
		if !groupDefined(re, name) {
			return name, true
		}
	}
	return "", false
}

func indexDollar(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '$' {
			return i
		}
	}
	return -1
}

// reference parses the group name following a $.
func reference(s string) (name, rest string, ok bool) {
	brace := false
	if len(s) > 0 && s[0] == '{' {
		brace = true
		s = s[1:]
	}
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		i += size
	}
	if i == 0 {
		return "", s, false
	}
	name = s[:i]
	if brace {
		if i >= len(s) || s[i] != '}' {
			return "", s, false
		}
		i++
	}
	return name, s[i:], true
}

func groupDefined(re *regexp.Regexp, name string) bool {
	if n, ok := groupNumber(name); ok {
		return n <= re.NumSubexp()
	}
	return re.SubexpIndex(name) >= 0
}

// groupNumber mirrors regexp's rule: all digits, no leading zero, below 1e8.
func groupNumber(name string) (int, bool) {
	if len(name) > 1 && name[0] == '0' {
		return 0, false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(name)
	if err != nil || n >= 1e8 {
		return 0, false
	}
	return n, true
}
