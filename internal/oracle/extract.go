package oracle

import "strings"

// ExtractJSONObject finds the first balanced {...} span in free-form oracle
// output. Models routinely wrap the payload in prose or markdown code
// fences, so raw text is scanned instead of parsed wholesale.
//
// Returns ok=false when no balanced object exists. String literals are
// honored so braces inside quoted values do not break the balance count.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
