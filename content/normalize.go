package content

import (
	"strconv"
	"strings"
	"unicode"
)

// namedEntities is the fixed table of named entities we decode. Anything
// else passes through unchanged. nbsp maps to a plain space so the
// whitespace collapse that follows treats it like any other gap.
var namedEntities = map[string]string{
	"nbsp": " ",
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"#39":  "'",
}

// Normalize cleans raw extracted text: decodes entities, collapses all
// whitespace runs to a single space, and trims. Returns false when the
// cleaned result is empty, which callers must treat as "no content
// here" rather than an error.
func Normalize(raw string) (string, bool) {
	s := decodeEntities(raw)
	s = collapseWhitespace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// decodeEntities resolves the fixed named-entity table plus numeric
// &#NN; and &#xHH; references in a single left-to-right pass. Unknown
// or malformed entities are kept verbatim. One pass means decoding
// removes exactly one level of encoding: double-encoded text such as
// "&amp;lt;" becomes "&lt;" and stays that way on repeat calls only if
// the caller does not re-normalize already-decoded output.
func decodeEntities(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:amp])
	s = s[amp:]

	for len(s) > 0 {
		if s[0] != '&' {
			next := strings.IndexByte(s, '&')
			if next < 0 {
				sb.WriteString(s)
				break
			}
			sb.WriteString(s[:next])
			s = s[next:]
			continue
		}

		semi := strings.IndexByte(s, ';')
		if semi < 1 || semi > 10 {
			sb.WriteByte('&')
			s = s[1:]
			continue
		}

		name := s[1:semi]
		if decoded, ok := decodeEntity(name); ok {
			sb.WriteString(decoded)
		} else {
			sb.WriteString(s[:semi+1])
		}
		s = s[semi+1:]
	}

	return sb.String()
}

func decodeEntity(name string) (string, bool) {
	if decoded, ok := namedEntities[name]; ok {
		return decoded, true
	}
	if !strings.HasPrefix(name, "#") {
		return "", false
	}

	digits := name[1:]
	base := 10
	if len(digits) > 1 && (digits[0] == 'x' || digits[0] == 'X') {
		digits = digits[1:]
		base = 16
	}
	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil || code <= 0 || code > unicode.MaxRune {
		return "", false
	}
	return string(rune(code)), true
}

// collapseWhitespace folds every run of whitespace, including newlines,
// carriage returns and tabs, into a single space and trims the ends.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false

	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
