package rendering

import "strings"

// EscapeXML escapes text for use in XML character data and attribute values.
// Characters that are not allowed in XML 1.0 are dropped.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&apos;")
		case '\t', '\n', '\r':
			result.WriteRune(r)
		default:
			if !validXMLRune(r) {
				continue
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}

func validXMLRune(r rune) bool {
	return (r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
