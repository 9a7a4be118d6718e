package ingestion

import (
	"strings"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ")

// CleanText normalizes extracted résumé text. Line endings become LF, runs of
// spaces inside a line collapse to one, leading indentation survives (except on
// markdown headings) and at most one blank line separates blocks.
func CleanText(content string) string {
	var b strings.Builder
	blank := false
	for _, line := range strings.Split(lineBreaks.Replace(content), "\n") {
		line = tidyLine(line)
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(line)
		blank = false
	}
	return b.String()
}

func tidyLine(line string) string {
	body := strings.TrimLeft(line, " \t")
	words := strings.Fields(body)
	if len(words) == 0 {
		return ""
	}
	if strings.HasPrefix(body, "#") {
		return strings.Join(words, " ")
	}
	indent := len(line) - len(body)
	return strings.Repeat(" ", indent) + strings.Join(words, " ")
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}
