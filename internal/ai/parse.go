package ai

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
)

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		// drop the language tag, e.g. ```json
		if !strings.ContainsAny(text[:i], "{[") {
			text = text[i+1:]
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractJSON cuts the outermost object or array out of text.
func extractJSON(text string) (string, error) {
	text = stripFences(text)
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", errors.New("no json in model response")
	}
	closing := byte('}')
	if text[start] == '[' {
		closing = ']'
	}
	end := strings.LastIndexByte(text, closing)
	if end < start {
		return "", errors.New("unterminated json in model response")
	}
	return text[start : end+1], nil
}

func decodeJSON[T any](text string) (T, error) {
	var out T
	raw, err := extractJSON(text)
	if err != nil {
		return out, err
	}
	if err = sonic.UnmarshalString(raw, &out); err != nil {
		return out, errors.New("parsing model json error: " + err.Error())
	}
	return out, nil
}
