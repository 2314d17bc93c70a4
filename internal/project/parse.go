package project

import "strings"

// ParseLyrics structures raw lyric text into sync lines: one line per
// non-blank input line, with parenthesized spans split out as ad-lib
// parts and the remaining text forming the main track. Characters are
// split per rune so multi-byte text gets one timestamp per glyph.
func ParseLyrics(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		main, adlibs := splitAdLibs(raw)
		line := NewLine(splitChars(main))
		for _, a := range adlibs {
			line.AdLibs = append(line.AdLibs, NewAdLib(splitChars(a)))
		}
		// A line that is pure ad-lib keeps an empty main track; the
		// editor treats empty tracks as trivially synced.
		lines = append(lines, line)
	}
	return lines
}

// splitAdLibs separates parenthesized spans from the surrounding text.
// Unbalanced parentheses are treated as literal text.
func splitAdLibs(raw string) (main string, adlibs []string) {
	var outside, inside strings.Builder
	depth := 0
	for _, r := range raw {
		switch {
		case r == '(':
			if depth == 0 {
				depth = 1
				continue
			}
			depth++
			inside.WriteRune(r)
		case r == ')' && depth > 0:
			depth--
			if depth == 0 {
				if s := strings.TrimSpace(inside.String()); s != "" {
					adlibs = append(adlibs, s)
				}
				inside.Reset()
				continue
			}
			inside.WriteRune(r)
		case depth > 0:
			inside.WriteRune(r)
		default:
			outside.WriteRune(r)
		}
	}
	if depth > 0 {
		// Unclosed paren: fold what we buffered back into the main text.
		outside.WriteString("(" + inside.String())
	}
	main = strings.Join(strings.Fields(outside.String()), " ")
	return main, adlibs
}

// splitChars breaks a string into per-rune character cells.
func splitChars(s string) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	chars := make([]string, len(runes))
	for i, r := range runes {
		chars[i] = string(r)
	}
	return chars
}
