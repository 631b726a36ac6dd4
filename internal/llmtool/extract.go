package llmtool

import "encoding/json"

// ExtractJSON is the best-effort recovery path for malformed model output.
// It scans raw for balanced {...} fragments, in order, and returns the first
// one that both parses and validates against s. The second return is false
// when no fragment qualifies. It never panics; callers must treat a false
// return as a full failure, not an empty success.
func ExtractJSON(raw string, s Schema) (map[string]any, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		end, ok := matchBrace(raw, i)
		if !ok {
			// Unbalanced opener; a nested object may still close, so keep
			// scanning from the next brace.
			continue
		}
		var v map[string]any
		if err := json.Unmarshal([]byte(raw[i:end+1]), &v); err == nil {
			if s.Validate(v) == nil {
				return v, true
			}
		}
		// Fragment parsed or balanced but did not satisfy the schema; a
		// nested fragment might, so do not skip past it.
	}
	return nil, false
}

// matchBrace returns the index of the brace closing raw[start], skipping
// string literals and escape sequences.
func matchBrace(raw string, start int) (int, bool) {
	depth := 0
	inString := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
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
				return i, true
			}
		}
	}
	return 0, false
}
