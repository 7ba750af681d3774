package lexical

import "unicode"

// qwertyRows lists the keys of a US QWERTY layout, top row first. Each row is
// offset roughly half a key to the right of the row above it.
var qwertyRows = []string{
	"1234567890-",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

type keyPos struct {
	row, col int
}

var keyPositions = func() map[rune]keyPos {
	m := make(map[rune]keyPos)
	for row, keys := range qwertyRows {
		for col, k := range keys {
			m[k] = keyPos{row: row, col: col}
		}
	}
	return m
}()

// KeyboardAdjacent reports whether a and b sit next to each other on a QWERTY
// keyboard, including the diagonal neighbours on the rows above and below.
// Identical or unknown keys are not adjacent.
func KeyboardAdjacent(a, b rune) bool {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if a == b {
		return false
	}
	pa, ok := keyPositions[a]
	if !ok {
		return false
	}
	pb, ok := keyPositions[b]
	if !ok {
		return false
	}
	switch pb.row - pa.row {
	case 0:
		return pb.col-pa.col == 1 || pa.col-pb.col == 1
	case -1:
		// row above: same column or one to the right
		return pb.col == pa.col || pb.col == pa.col+1
	case 1:
		// row below: same column or one to the left
		return pb.col == pa.col || pb.col == pa.col-1
	default:
		return false
	}
}
