package lexical

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var testConfusables = Confusables{
	'а': 'a', // Cyrillic а
	'о': 'o', // Cyrillic о
	'р': 'p', // Cyrillic р
	'ο': 'o', // Greek ο
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "plain ascii is lowercased", input: "PayPal", expected: "paypal"},
		{name: "cyrillic a is mapped", input: "pаypаl", expected: "paypal"},
		{name: "greek omicron is mapped", input: "gοοgle", expected: "google"},
		{name: "unmapped non-latin is lowercased only", input: "ДОМ", expected: "дом"},
		{name: "digits are left alone", input: "amaz0n", expected: "amaz0n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testConfusables.Normalize(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, utf8.RuneCountInString(tt.input), utf8.RuneCountInString(got),
				"normalization must not change the rune count")
		})
	}
}

func TestConfusablesLookupAndContains(t *testing.T) {
	canonical, ok := testConfusables.Lookup('р')
	assert.True(t, ok)
	assert.Equal(t, 'p', canonical)

	_, ok = testConfusables.Lookup('p')
	assert.False(t, ok)

	assert.True(t, testConfusables.Contains("www.рaypal.com"))
	assert.False(t, testConfusables.Contains("www.paypal.com"))
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ScriptProfile
		mixed    bool
	}{
		{name: "empty", input: "", expected: ScriptProfile{}, mixed: false},
		{name: "latin only", input: "paypal.com", expected: ScriptProfile{HasLatin: true}, mixed: false},
		{name: "cyrillic only", input: "пример.рф", expected: ScriptProfile{HasCyrillic: true}, mixed: false},
		{
			name:     "latin with cyrillic a",
			input:    "pаypal.com",
			expected: ScriptProfile{HasLatin: true, HasCyrillic: true},
			mixed:    true,
		},
		{
			name:     "latin with greek omicron",
			input:    "gοogle.com",
			expected: ScriptProfile{HasLatin: true, HasGreek: true},
			mixed:    true,
		},
		{name: "digits and punctuation ignored", input: "192.168.1.1", expected: ScriptProfile{}, mixed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile(tt.input)
			assert.Equal(t, tt.expected, p)
			assert.Equal(t, tt.mixed, p.Mixed())
			assert.Equal(t, tt.mixed, IsMixedScript(tt.input))
		})
	}
}

func TestKeyboardAdjacent(t *testing.T) {
	tests := []struct {
		a, b     rune
		adjacent bool
	}{
		{'o', '0', true},
		{'0', 'o', true},
		{'o', 'p', true},
		{'a', 'q', true},
		{'a', 'z', true},
		{'s', 'z', true},
		{'m', 'n', true},
		{'l', '1', false},
		{'a', 'p', false},
		{'a', 'a', false},
		{'A', 'S', true},
		{'а', 'a', false},
	}

	for _, tt := range tests {
		t.Run(string([]rune{tt.a, '-', tt.b}), func(t *testing.T) {
			assert.Equal(t, tt.adjacent, KeyboardAdjacent(tt.a, tt.b))
		})
	}
}
