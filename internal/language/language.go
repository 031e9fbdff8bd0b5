package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

// Commentary languages with a built-in analysis profile.
var languages = []entry{
	{"en", "eng", "English", []string{"english", "inglés", "ingles"}},
	{"es", "spa", "Español (Spanish)", []string{"spanish", "español", "espanol", "castellano"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	// BCP 47 tags such as "es-MX" or "en_GB" resolve to their base language.
	tag, err := xlanguage.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return nil
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return nil
	}
	if e, ok := byCode2[base.String()]; ok {
		return e
	}
	return nil
}

// Supported returns the ISO 639-1 codes with a built-in profile, in display order.
func Supported() []string {
	out := make([]string, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.code2)
	}
	return out
}

// IsSupported reports whether code resolves to a commentary language.
func IsSupported(code string) bool {
	return lookup(code) != nil
}

// ToISO2 converts any recognized language code, word, or BCP 47 tag to
// ISO 639-1. Returns empty string for unrecognized input.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
