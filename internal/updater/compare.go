// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package updater

import (
	"strings"
	"unicode"
)

// sameCode reports whether a and b differ only in whitespace that does not
// separate two words. String literals, heredocs, and comments must match
// byte for byte.
func sameCode(a, b string) bool {
	return canonical(a) == canonical(b)
}

// canonical drops whitespace between tokens, keeping a single space where
// it separates two words. Literal text is copied unchanged; a line comment
// is always followed by one newline.
func canonical(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	pendingSpace := false
	for i := 0; i < len(runes); {
		r := runes[i]
		if unicode.IsSpace(r) {
			pendingSpace = true
			i++
			continue
		}
		if n, lineComment := literalLen(runes, i); n > 0 {
			lit := string(runes[i : i+n])
			if lineComment {
				lit = strings.TrimRightFunc(lit, unicode.IsSpace) + "\n"
			}
			b.WriteString(lit)
			prev, pendingSpace = 0, false
			i += n
			continue
		}
		if pendingSpace && isWord(prev) && isWord(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev, pendingSpace = r, false
		i++
	}
	return b.String()
}

// literalLen returns the length of the string literal, heredoc, or comment
// starting at runes[i], or 0 when none starts there. An unterminated literal
// runs to the end of the text.
func literalLen(runes []rune, i int) (n int, lineComment bool) {
	rest := runes[i:]
	switch {
	case rest[0] == '\'' || rest[0] == '"' || rest[0] == '`':
		return quotedLen(rest), false
	case hasPrefix(rest, "<<<"):
		return heredocLen(rest), false
	case hasPrefix(rest, "/*"):
		if end := indexOf(rest[2:], "*/"); end >= 0 {
			return end + 4, false
		}
		return len(rest), false
	case hasPrefix(rest, "//"), rest[0] == '#' && !hasPrefix(rest, "#["):
		end := 0
		for end < len(rest) && rest[end] != '\n' {
			end++
		}
		return end, true
	}
	return 0, false
}

// quotedLen returns the length of a quoted literal including both quotes.
func quotedLen(rest []rune) int {
	quote := rest[0]
	for j := 1; j < len(rest); j++ {
		switch rest[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(rest)
}

// heredocLen returns the length of a heredoc or nowdoc through its closing
// identifier. Text that does not open a heredoc yields the length of the
// operator alone.
func heredocLen(rest []rune) int {
	j := 3
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	quoted := j < len(rest) && (rest[j] == '\'' || rest[j] == '"')
	if quoted {
		j++
	}
	start := j
	for j < len(rest) && isWord(rest[j]) && rest[j] != '$' && rest[j] != '\\' {
		j++
	}
	if j == start {
		return 3
	}
	label := string(rest[start:j])
	if quoted {
		j++
	}

	for j < len(rest) {
		for j < len(rest) && rest[j] != '\n' {
			j++
		}
		if j == len(rest) {
			break
		}
		j++
		k := j
		for k < len(rest) && (rest[k] == ' ' || rest[k] == '\t') {
			k++
		}
		if hasPrefix(rest[k:], label) {
			end := k + len([]rune(label))
			if end == len(rest) || !isWord(rest[end]) {
				return end
			}
		}
	}
	return len(rest)
}

func hasPrefix(runes []rune, prefix string) bool {
	p := []rune(prefix)
	if len(runes) < len(p) {
		return false
	}
	for i, r := range p {
		if runes[i] != r {
			return false
		}
	}
	return true
}

func indexOf(runes []rune, sub string) int {
	for i := range runes {
		if hasPrefix(runes[i:], sub) {
			return i
		}
	}
	return -1
}

func isWord(r rune) bool {
	return r == '_' || r == '$' || r == '\\' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sameName(a, b string) bool {
	return strings.TrimPrefix(a, `\`) == strings.TrimPrefix(b, `\`)
}
