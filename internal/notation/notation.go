// Package notation parses the inline priority notation accepted by eq:
// symbol form ("!" for urgency, "$" for importance, 1-3 repeats) and
// shorthand form ("u2i3", "i3", "u1" in either order). Parsing is total:
// a partly malformed token degrades to defaults, and a token that never
// resolves to notation stays in the title.
package notation

import "strings"

const defaultLevel = 1

type tokenKind int

const (
	kindNone tokenKind = iota
	kindSymbol
	kindShorthand
)

// Parse extracts priority notation from free-form input. It returns the
// residual title with notation tokens stripped and whitespace collapsed,
// plus the resolved (urgency, importance) pair. Both axes default to 1
// when unspecified. When both notations appear, shorthand wins; within a
// notation kind the last token wins.
func Parse(input string) (title string, urgency, importance int) {
	urgency, importance = defaultLevel, defaultLevel

	var words []string
	var symU, symI int
	var shU, shI int
	sawSymbol, sawShorthand := false, false

	for _, tok := range strings.Fields(input) {
		u, i, kind := parseToken(tok)
		switch kind {
		case kindSymbol:
			symU, symI = u, i
			sawSymbol = true
		case kindShorthand:
			shU, shI = u, i
			sawShorthand = true
		default:
			words = append(words, tok)
		}
	}

	if sawShorthand {
		urgency, importance = shU, shI
	} else if sawSymbol {
		urgency, importance = symU, symI
	}
	return strings.Join(words, " "), urgency, importance
}

// ParseToken reports whether a single token is priority notation and, if
// so, the pair it resolves to. Used by the CLI, which receives argv words
// already split.
func ParseToken(tok string) (urgency, importance int, ok bool) {
	u, i, kind := parseToken(tok)
	if kind == kindNone {
		return 0, 0, false
	}
	return u, i, true
}

func parseToken(tok string) (urgency, importance int, kind tokenKind) {
	if tok == "" {
		return 0, 0, kindNone
	}
	if u, i, ok := parseSymbol(tok); ok {
		return u, i, kindSymbol
	}
	if u, i, ok := parseShorthand(tok); ok {
		return u, i, kindShorthand
	}
	return 0, 0, kindNone
}

// parseSymbol handles tokens made up entirely of '!' and '$'. Counts are
// capped at 3; an axis with no symbols defaults to 1.
func parseSymbol(tok string) (urgency, importance int, ok bool) {
	var bangs, dollars int
	for _, c := range tok {
		switch c {
		case '!':
			bangs++
		case '$':
			dollars++
		default:
			return 0, 0, false
		}
	}
	if bangs == 0 && dollars == 0 {
		return 0, 0, false
	}
	return clampLevel(bangs), clampLevel(dollars), true
}

// parseShorthand handles tokens like "u2i3", "i1u2", "u3" or "i2". The
// token must consist solely of u/i markers each followed by a digit run,
// and at least one marker must carry a level in range. A malformed axis
// next to a valid one keeps its default; a token with no valid axis at
// all ("u", "i9", "ui") is title text, not notation.
func parseShorthand(tok string) (urgency, importance int, ok bool) {
	urgency, importance = defaultLevel, defaultLevel
	lower := strings.ToLower(tok)

	pos := 0
	validAxes := 0
	for pos < len(lower) {
		marker := lower[pos]
		if marker != 'u' && marker != 'i' {
			return 0, 0, false
		}
		pos++
		start := pos
		for pos < len(lower) && lower[pos] >= '0' && lower[pos] <= '9' {
			pos++
		}
		digits := lower[start:pos]
		level, valid := levelFromDigits(digits)
		if !valid {
			continue // malformed axis, keep default
		}
		validAxes++
		if marker == 'u' {
			urgency = level
		} else {
			importance = level
		}
	}
	if validAxes == 0 {
		return 0, 0, false
	}
	return urgency, importance, true
}

func levelFromDigits(digits string) (int, bool) {
	if len(digits) != 1 {
		return 0, false
	}
	level := int(digits[0] - '0')
	if level < 1 || level > 3 {
		return 0, false
	}
	return level, true
}

func clampLevel(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}
