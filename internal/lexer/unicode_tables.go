package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// idStartTable and idContinueTable are the simplified ID_Start / ID_Continue
// tables for identifier scanning: letters for ID_Start, letters plus decimal
// digits for ID_Continue. The underscore is handled separately in isIDStart
// / isIDContinue since it sits outside unicode.L.
//
// rangetable.Merge builds a single read-only *unicode.RangeTable out of the
// standard library's per-category tables, so each rune needs one table probe
// instead of several unicode.Is calls.
var (
	idStartTable    = rangetable.Merge(unicode.L)
	idContinueTable = rangetable.Merge(unicode.L, unicode.Nd)
)
