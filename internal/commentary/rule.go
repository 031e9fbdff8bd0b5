package commentary

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// trailingBoundary accepts any non-word rune or the end of input after the
// rule body, letting the regexp engine backtrack into alternatives that end
// on a word boundary.
const trailingBoundary = `(?:[^\p{L}\p{N}_]|$)`

// spaceClass widens RE2's ASCII-only \s to vertical tab, the information
// separators, NEL, and every Unicode separator such as NBSP.
const spaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// expandSpaces rewrites each \s in body to spaceClass, bracketing it when it
// appears outside a character class.
func expandSpaces(body string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			next := body[i+1]
			i++
			if next == 's' {
				if inClass {
					b.WriteString(spaceClass)
				} else {
					b.WriteString("[" + spaceClass + "]")
				}
				continue
			}
			b.WriteByte(c)
			b.WriteByte(next)
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// rule matches a pattern body with Unicode-aware word boundaries. Go's \b only
// understands ASCII word characters, which would split "anotó" or "Modrić".
type rule struct {
	body     string
	re       *regexp.Regexp
	leading  bool
	trailing bool
}

type span struct {
	start int
	end   int
}

type ruleOptions struct {
	foldCase bool
	leading  bool
	trailing bool
}

func compileRule(body string, opts ruleOptions) (*rule, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("compile rule: empty pattern")
	}
	var b strings.Builder
	if opts.foldCase {
		b.WriteString("(?i)")
	}
	b.WriteByte('(')
	b.WriteString(expandSpaces(body))
	b.WriteByte(')')
	if opts.trailing {
		b.WriteString(trailingBoundary)
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", body, err)
	}
	return &rule{body: body, re: re, leading: opts.leading, trailing: opts.trailing}, nil
}

func mustRule(body string, opts ruleOptions) *rule {
	r, err := compileRule(body, opts)
	if err != nil {
		panic(err)
	}
	return r
}

// wordBounded is the option set for keyword and name rules.
var wordBounded = ruleOptions{foldCase: true, leading: true, trailing: true}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// findAll returns leftmost non-overlapping byte spans of the rule body in text.
func (r *rule) findAll(text string) []span {
	var spans []span
	pos := 0
	for pos < len(text) {
		loc := r.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]
		if end == start || (r.leading && !boundaryBefore(text, start)) {
			pos = start + runeWidthAt(text, start)
			continue
		}
		spans = append(spans, span{start: start, end: end})
		// Resume after the body so the boundary rune can start the next match.
		pos = end
	}
	return spans
}

func boundaryBefore(text string, offset int) bool {
	next, _ := utf8.DecodeRuneInString(text[offset:])
	if offset == 0 {
		return isWordRune(next)
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:offset])
	return isWordRune(prev) != isWordRune(next)
}

func runeWidthAt(text string, offset int) int {
	if offset >= len(text) {
		return 1
	}
	_, width := utf8.DecodeRuneInString(text[offset:])
	if width == 0 {
		return 1
	}
	return width
}

// literalPattern escapes a known name for use as a rule body.
func literalPattern(name string) string {
	return regexp.QuoteMeta(strings.TrimSpace(name))
}
