package lexical

import "unicode"

// ScriptProfile records which of the scripts used in homograph attacks appear
// in a string.
type ScriptProfile struct {
	HasLatin    bool `json:"has_latin"`
	HasCyrillic bool `json:"has_cyrillic"`
	HasGreek    bool `json:"has_greek"`
}

// Mixed reports whether more than one script is present.
func (p ScriptProfile) Mixed() bool {
	n := 0
	for _, present := range []bool{p.HasLatin, p.HasCyrillic, p.HasGreek} {
		if present {
			n++
		}
	}
	return n > 1
}

// Profile classifies every rune of text by Unicode script membership. Digits,
// punctuation and other scripts are ignored.
func Profile(text string) ScriptProfile {
	var p ScriptProfile
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r):
			p.HasLatin = true
		case unicode.Is(unicode.Cyrillic, r):
			p.HasCyrillic = true
		case unicode.Is(unicode.Greek, r):
			p.HasGreek = true
		}
	}
	return p
}

// IsMixedScript is shorthand for Profile(text).Mixed().
func IsMixedScript(text string) bool {
	return Profile(text).Mixed()
}
