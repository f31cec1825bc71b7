// Package typography rewrites straight punctuation to typographic
// equivalents in note text.
//
// The rules only ever match straight ASCII characters, so applying the
// transform to already-transformed text is a no-op.
package typography

import "unicode"

const (
	openDouble  = '“' // "
	closeDouble = '”' // "
	openSingle  = '‘' // '
	closeSingle = '’' // '
	emDash      = '—' // —
	ellipsis    = '…' // …
)

// Apply transforms straight quotes, double hyphens and ellipses in text.
// Inline backtick spans and fenced code blocks are copied verbatim.
func Apply(text string) string {
	out := make([]rune, 0, len(text))
	runes := []rune(text)
	inFence := false
	lineStart := 0

	for i := 0; i < len(runes); {
		if i == lineStart && isFenceLine(runes[i:]) {
			inFence = !inFence
		}
		end := lineEnd(runes, i)
		if inFence || spanHasFenceOpen(runes[i:end]) {
			out = append(out, runes[i:end]...)
		} else {
			out = append(out, transformLine(runes[i:end])...)
		}
		if end < len(runes) {
			out = append(out, '\n')
			end++
		}
		i = end
		lineStart = i
	}
	return string(out)
}

// transformLine applies the rules to a single line, skipping backtick spans.
func transformLine(line []rune) []rune {
	out := make([]rune, 0, len(line))
	inCode := false

	for i := 0; i < len(line); i++ {
		r := line[i]

		if r == '`' {
			inCode = !inCode
			out = append(out, r)
			continue
		}
		if inCode {
			out = append(out, r)
			continue
		}

		switch r {
		case '.':
			// ". . ." and "..." collapse to a single ellipsis glyph.
			if matches(line, i, []rune(". . .")) {
				out = append(out, ellipsis)
				i += 4
				continue
			}
			if n := dotRun(line, i); n == 3 {
				out = append(out, ellipsis)
				i += 2
				continue
			}
			out = append(out, r)
		case '-':
			// Exactly two hyphens become an em dash; longer runs (rules,
			// frontmatter fences) are left alone.
			if n := hyphenRun(line, i); n == 2 {
				out = append(out, emDash)
				i++
				continue
			} else if n > 2 {
				for j := 0; j < n; j++ {
					out = append(out, '-')
				}
				i += n - 1
				continue
			}
			out = append(out, r)
		case '"':
			if opensQuote(line, i) {
				out = append(out, openDouble)
			} else {
				out = append(out, closeDouble)
			}
		case '\'':
			// A contraction apostrophe reads as a closing quote.
			if opensQuote(line, i) && !isApostrophe(line, i) {
				out = append(out, openSingle)
			} else {
				out = append(out, closeSingle)
			}
		default:
			out = append(out, r)
		}
	}
	return out
}

// opensQuote reports whether a quote at position i is in opening context:
// start of line, or preceded by whitespace or opening punctuation.
func opensQuote(line []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := line[i-1]
	if unicode.IsSpace(prev) {
		return true
	}
	switch prev {
	case '(', '[', '{', openDouble, openSingle, emDash:
		return true
	}
	return false
}

func isApostrophe(line []rune, i int) bool {
	return i > 0 && i+1 < len(line) &&
		unicode.IsLetter(line[i-1]) && unicode.IsLetter(line[i+1])
}

func matches(line []rune, i int, pattern []rune) bool {
	if i+len(pattern) > len(line) {
		return false
	}
	for j, p := range pattern {
		if line[i+j] != p {
			return false
		}
	}
	return true
}

func dotRun(line []rune, i int) int {
	n := 0
	for i+n < len(line) && line[i+n] == '.' {
		n++
	}
	return n
}

func hyphenRun(line []rune, i int) int {
	n := 0
	for i+n < len(line) && line[i+n] == '-' {
		n++
	}
	return n
}

func lineEnd(runes []rune, i int) int {
	for i < len(runes) && runes[i] != '\n' {
		i++
	}
	return i
}

func isFenceLine(rest []rune) bool {
	end := lineEnd(rest, 0)
	line := rest[:end]
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n+2 < len(line) && line[n] == '`' && line[n+1] == '`' && line[n+2] == '`'
}

// spanHasFenceOpen guards the degenerate case of a fence opener with
// trailing text on the same line; the whole line is left untouched.
func spanHasFenceOpen(line []rune) bool {
	return isFenceLine(line)
}
