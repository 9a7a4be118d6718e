package llm

import "strings"

// CleanJSONBlock reduces an LLM response to the JSON value it contains.
// It strips ```json fences, <START>/<END> markers, conversational preambles and trailing text.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "<START>"); start >= 0 {
		rest := text[start+len("<START>"):]
		if end := strings.Index(rest, "<END>"); end >= 0 {
			rest = rest[:end]
		}
		text = strings.TrimSpace(rest)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.ContainsAny(firstLine, "{[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if value, ok := ExtractJSONValue(text); ok {
		return value
	}
	return text
}

// ExtractJSONValue returns the first balanced JSON object or array in text
func ExtractJSONValue(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}

	open := text[start]
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// TrimQuotes strips whitespace and one layer of wrapping quotes from generated prose
func TrimQuotes(text string) string {
	text = strings.TrimSpace(text)
	for _, q := range []string{`"`, `'`, "“"} {
		closing := q
		if q == "“" {
			closing = "”"
		}
		if len(text) >= len(q)+len(closing) && strings.HasPrefix(text, q) && strings.HasSuffix(text, closing) {
			return strings.TrimSpace(text[len(q) : len(text)-len(closing)])
		}
	}
	return text
}
