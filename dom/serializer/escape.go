package serializer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// escape.go holds the per-kind character-escaping rules spec §4.5 spells
// out, grounded on the teacher's xml.EscapeText calls in streaming_encoder.go
// (escapeString/escapeText there cover only "&<>" for a map-shaped document;
// this generalizes to the DOM's richer per-context rules) and on c14n.go's
// escapeText/escapeAttr, which already distinguish text from attribute-value
// escaping and already encode the CR/TAB/LF numeric-reference behavior
// canonical form requires.

// escapeText applies the Text emission rule: always escape & and <; in
// canonical form also escape >, \r and \t as hex numeric references;
// outside canonical form, the one three-character sequence "]]>" is escaped
// (as "]]&gt;") since it would otherwise look like a CDATA end marker.
func escapeText(data string, canonical bool) string {
	var b strings.Builder
	for _, r := range data {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			if canonical {
				b.WriteString("&gt;")
			} else {
				b.WriteRune(r)
			}
		case '\r':
			if canonical {
				b.WriteString("&#xD;")
			} else {
				b.WriteRune(r)
			}
		case '\t':
			if canonical {
				b.WriteString("&#x9;")
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !canonical {
		out = strings.ReplaceAll(out, "]]>", "]]&gt;")
	}
	return out
}

// escapeAttrValue applies the Attr emission rule: & < " always; \r \n \t as
// numeric references (decimal outside canonical form, hex and additionally
// > within it).
func escapeAttrValue(value string, canonical bool) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '"':
			b.WriteString("&quot;")
		case '>':
			if canonical {
				b.WriteString("&gt;")
			} else {
				b.WriteRune(r)
			}
		case '\r':
			if canonical {
				b.WriteString("&#xD;")
			} else {
				b.WriteString("&#13;")
			}
		case '\n':
			if canonical {
				b.WriteString("&#xA;")
			} else {
				b.WriteString("&#10;")
			}
		case '\t':
			if canonical {
				b.WriteString("&#x9;")
			} else {
				b.WriteString("&#9;")
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// commentWellFormed reports whether data may legally appear inside
// "<!--...-->": no "--" substring, and not ending in "-" (which would
// otherwise produce "--->").
func commentWellFormed(data string) bool {
	return !strings.Contains(data, "--") && !strings.HasSuffix(data, "-")
}

// piWellFormed reports whether data may legally appear as a processing
// instruction's data: no "?>" (would terminate it early) and no literal CR
// (PI data is not a CharacterData and spec §4.5 fails it outright rather
// than normalizing the line ending).
func piWellFormed(data string) bool {
	return !strings.Contains(data, "?>") && !strings.Contains(data, "\r")
}

// splitCDATAData rewrites data for emission inside a (possibly repeated)
// "<![CDATA[...]]>" run, breaking out of the marked section and back in
// around every "]]>" or bare "\r" it contains -- the two byte sequences a
// CDATA section cannot carry verbatim. The caller wraps the result in a
// leading "<![CDATA[" and trailing "]]>"; splits counts how many times that
// happened, for the cdata-section-splitted warning.
func splitCDATAData(data string) (rewritten string, splits int) {
	var b strings.Builder
	n := len(data)
	i := 0
	for i < n {
		if data[i] == ']' && i+2 < n && data[i+1] == ']' && data[i+2] == '>' {
			b.WriteString("]]>]]&gt;<![CDATA[")
			i += 3
			splits++
			continue
		}
		if data[i] == '\r' {
			b.WriteString("]]>&#xD;<![CDATA[")
			i++
			splits++
			continue
		}
		r, size := utf8.DecodeRuneInString(data[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String(), splits
}

// asciiEscape replaces every non-ASCII character remaining in an
// already-escaped string with a decimal numeric character reference, for
// an explicit 7-bit output encoding (spec §4.5's encoding-aware escaper:
// "a callback producing replacement text for any character that cannot be
// encoded under the output encoding").
func asciiEscape(s string) string {
	hasNonASCII := false
	for _, r := range s {
		if r > 127 {
			hasNonASCII = true
			break
		}
	}
	if !hasNonASCII {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r > 127 {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteString(";")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// containsCDATAHazard reports whether data would need splitCDATAData to do
// any work at all -- used to decide, under split-cdata-sections=false,
// whether the data can be emitted as a single CDATA section unmodified or
// must instead raise wf-invalid-character.
func containsCDATAHazard(data string) bool {
	return strings.Contains(data, "]]>") || strings.ContainsRune(data, '\r')
}
