package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	controlCharsRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ParseAIJSON decodes a JSON object from model output that may be:
// - pure JSON
// - wrapped in a markdown code fence
// - surrounded by prose
// - slightly malformed (trailing commas, bare keys, single quotes)
func ParseAIJSON(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("empty input")
	}

	candidates := []string{input}
	if fenced := extractFromMarkdown(input); fenced != "" {
		candidates = append(candidates, fenced)
	}
	if obj := extractJSONObject(input); obj != "" {
		candidates = append(candidates, obj)
		candidates = append(candidates, cleanAndFixJSON(obj))
	}
	candidates = append(candidates, cleanAndFixJSON(input))

	var lastErr error
	for _, c := range candidates {
		err := json.Unmarshal([]byte(c), target)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("failed to parse JSON from input %q: %w", truncateString(input, 100), lastErr)
}

// extractFromMarkdown returns the body of the first fenced block that looks like JSON
func extractFromMarkdown(input string) string {
	m := fencedJSONRe.FindStringSubmatch(input)
	if len(m) < 2 {
		return ""
	}
	body := strings.TrimSpace(m[1])
	if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		return body
	}
	return ""
}

// extractJSONObject finds the first balanced JSON object in surrounding text
func extractJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	return extractBalancedBraces(input[start:], '{', '}')
}

// extractBalancedBraces returns the prefix of input up to the brace that
// closes the first open brace, skipping braces inside strings
func extractBalancedBraces(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := -1

	for i, ch := range input {
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close && depth > 0:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// cleanAndFixJSON repairs common model formatting mistakes
func cleanAndFixJSON(input string) string {
	s := strings.TrimSpace(input)
	s = repairSyntax(s)
	s = fixSingleQuotes(s)
	return controlCharsRe.ReplaceAllString(s, "")
}

// repairSyntax quotes bare object keys and drops trailing commas.
// Text inside quoted strings is copied as is.
func repairSyntax(input string) string {
	var b strings.Builder
	var quote byte
	escape := false
	// last significant byte outside strings
	var prev byte

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if quote != 0 {
			b.WriteByte(ch)
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == quote:
				quote = 0
				prev = ch
			}
			continue
		}

		switch {
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			k := i + 1
			for k < len(input) && isSpace(input[k]) {
				k++
			}
			if k < len(input) && (input[k] == '}' || input[k] == ']') {
				continue
			}
		case (prev == '{' || prev == ',') && isIdentStart(ch):
			j := i + 1
			for j < len(input) && isIdentPart(input[j]) {
				j++
			}
			k := j
			for k < len(input) && isSpace(input[k]) {
				k++
			}
			if k < len(input) && input[k] == ':' {
				b.WriteByte('"')
				b.WriteString(input[i:j])
				b.WriteByte('"')
				prev = input[j-1]
				i = j - 1
				continue
			}
		}

		b.WriteByte(ch)
		if !isSpace(ch) {
			prev = ch
		}
	}

	return b.String()
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// fixSingleQuotes turns single-quoted strings into double-quoted ones.
// Apostrophes inside double-quoted strings are left alone.
func fixSingleQuotes(input string) string {
	var b strings.Builder
	inDouble := false
	inSingle := false
	escape := false

	for _, ch := range input {
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteRune('"')
			continue
		}
		b.WriteRune(ch)
	}

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
