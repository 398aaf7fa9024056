package service

import (
	"regexp"
	"strings"
)

var numberedLinePattern = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// ParseQuestions keeps the lines carrying a leading "N." numbering, strips
// the numbering and trims. A response without numbered lines yields an
// empty slice, not an error.
func ParseQuestions(raw string) []string {
	questions := []string{}
	for _, line := range strings.Split(raw, "\n") {
		m := numberedLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		question := strings.TrimSpace(m[1])
		if question != "" {
			questions = append(questions, question)
		}
	}
	return questions
}

// ParseSummary joins the first 3 non-blank lines into the summary and, in
// an independent pass over the same lines, collects "-" or "•" bullets as
// highlights. A bullet inside the first 3 lines lands in both outputs.
func ParseSummary(raw string) (string, []string) {
	var summaryLines []string
	highlights := []string{}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(summaryLines) < 3 {
			summaryLines = append(summaryLines, trimmed)
		}
		if bullet, ok := stripBullet(trimmed); ok {
			highlights = append(highlights, bullet)
		}
	}

	return strings.Join(summaryLines, " "), highlights
}

func stripBullet(line string) (string, bool) {
	for _, prefix := range []string{"-", "•"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}
