package recommendation

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// TitleParser decodes candidate titles from generated text. Parse returns
// nil when the text is not in the format the parser understands.
type TitleParser struct {
	Name  string
	Parse func(text string) []string
}

// DefaultTitleParsers is the fallback chain, strictest format first.
var DefaultTitleParsers = []TitleParser{
	{Name: "json_array", Parse: parseJSONArray},
	{Name: "quoted_strings", Parse: parseQuotedStrings},
	{Name: "numbered_lines", Parse: parseNumberedLines},
}

var (
	quotedPattern    = regexp.MustCompile(`"([^"]+)"`)
	numberingPattern = regexp.MustCompile(`^\d+\.\s*`)
)

// ParseTitles runs the parsers in order and returns the first non-empty
// result, truncated to limit, along with the name of the parser that matched.
func ParseTitles(text string, limit int, parsers []TitleParser) ([]string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ""
	}
	for _, parser := range parsers {
		titles := parser.Parse(text)
		if len(titles) == 0 {
			continue
		}
		if limit > 0 && len(titles) > limit {
			titles = titles[:limit]
		}
		return titles, parser.Name
	}
	return nil, ""
}

func parseJSONArray(text string) []string {
	sanitized := stripCodeFence(text)
	var items []any
	if err := json.Unmarshal([]byte(sanitized), &items); err != nil {
		return nil
	}
	titles := make([]string, 0, len(items))
	for _, item := range items {
		value, ok := item.(string)
		if !ok {
			continue
		}
		if clean := strings.TrimSpace(value); clean != "" {
			titles = append(titles, clean)
		}
	}
	return titles
}

func parseQuotedStrings(text string) []string {
	matches := quotedPattern.FindAllStringSubmatch(text, -1)
	titles := make([]string, 0, len(matches))
	for _, match := range matches {
		if clean := strings.TrimSpace(match[1]); clean != "" {
			titles = append(titles, clean)
		}
	}
	return titles
}

func parseNumberedLines(text string) []string {
	lines := strings.Split(text, "\n")
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if isDecorationLine(line) {
			continue
		}
		line = numberingPattern.ReplaceAllString(line, "")
		line = trimOneQuote(line)
		if clean := strings.TrimSpace(line); clean != "" {
			titles = append(titles, clean)
		}
	}
	return titles
}

// isDecorationLine reports lines that carry no title: blanks, code fences and
// bare array brackets.
func isDecorationLine(line string) bool {
	if line == "" || strings.HasPrefix(line, "```") {
		return true
	}
	return strings.Trim(line, "[],") == ""
}

func trimOneQuote(s string) string {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if s != "" && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

func stripCodeFence(text string) string {
	sanitized := strings.TrimSpace(text)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimPrefix(sanitized, "```")
	sanitized = strings.TrimSuffix(sanitized, "```")
	return strings.TrimSpace(sanitized)
}
