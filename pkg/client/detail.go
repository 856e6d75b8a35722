package client

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxExcerpt caps the plain text kept from an unparsable error body.
const maxExcerpt = 200

var (
	excerptPolicyOnce sync.Once
	excerptPolicy     *bluemonday.Policy
)

// parseDetail extracts the human readable message from an error body. FastAPI
// answers {"detail": "text"} for HTTPException and {"detail": [{loc, msg}]}
// for request validation failures. Anything else yields "". Server text is
// kept as sent, only surrounding whitespace is trimmed.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err != nil {
		return ""
	}
	messages := make([]string, 0, len(items))
	for _, item := range items {
		msg := strings.TrimSpace(item.Msg)
		if msg == "" {
			continue
		}
		if field := lastLocation(item.Loc); field != "" {
			msg = field + ": " + msg
		}
		messages = append(messages, msg)
	}
	return strings.Join(normalizeMessages(messages), "; ")
}

func lastLocation(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		switch v := loc[i].(type) {
		case string:
			if v != "body" {
				return v
			}
		case float64:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// bodyExcerpt renders an error body that carried no usable detail, such as
// a proxy's HTML error page, as one line of plain text for diagnostics.
func bodyExcerpt(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	excerptPolicyOnce.Do(func() {
		excerptPolicy = bluemonday.StrictPolicy()
	})
	text := html.UnescapeString(string(excerptPolicy.SanitizeBytes(body)))
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxExcerpt {
		text = string(runes[:maxExcerpt]) + "…"
	}
	return text
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		if _, exists := seen[message]; exists {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}
