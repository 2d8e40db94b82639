package openai

import (
	"errors"
	"strings"
)

var errNoJSONFound = errors.New("no JSON found in response")

// extractJSONArray extracts the first complete JSON array from model output,
// tolerating surrounding prose. Bracket matching failures and mismatched brace
// counts are reported as errors so callers can treat the chunk as unparseable.
func extractJSONArray(content string) (string, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return "", errNoJSONFound
	}

	candidate := content[start : end+1]
	if !bracesBalanced(candidate) {
		return "", errors.New("mismatched braces in JSON array")
	}
	return candidate, nil
}

// extractJSONObject extracts the first complete JSON object from model output.
// Braces inside strings are ignored while matching.
func extractJSONObject(content string) (string, error) {
	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		// Handle string escaping to avoid counting braces inside strings
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}

		// Only count braces outside of strings
		if !inString {
			switch ch {
			case '{':
				if firstBrace == -1 {
					firstBrace = i
				}
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 && firstBrace != -1 {
					return content[firstBrace : i+1], nil
				}
			}
		}
	}

	return "", errNoJSONFound
}

func bracesBalanced(content string) bool {
	opens := strings.Count(content, "{")
	closes := strings.Count(content, "}")
	return opens == closes
}
