package finna

import (
	"encoding/json"
	"regexp"
	"strings"
)

var tagBoundary = regexp.MustCompile(`>(\s*)<`)

var markupUnescaper = strings.NewReplacer(
	`\"`, `"`,
	`\/`, `/`,
	`\\`, `\`,
)

// NormalizeMarkup turns the escaped fullRecord JSON string into readable
// markup with one tag boundary per line. Indentation already present between
// tags is kept.
func NormalizeMarkup(raw string) string {
	s, ok := decodeJSONString(strings.TrimSpace(raw))
	if ok {
		s = strings.ReplaceAll(s, "\n", "")
	} else {
		s = strings.ReplaceAll(raw, `\n`, "")
		s = markupUnescaper.Replace(s)
		s = strings.TrimSpace(s)
		if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
			s = s[1 : len(s)-1]
		}
	}
	return tagBoundary.ReplaceAllString(strings.TrimSpace(s), ">\n$1<")
}

// decodeJSONString decodes s as a JSON string literal, quoted or not
func decodeJSONString(s string) (string, bool) {
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		s = `"` + s + `"`
	}
	var out string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return "", false
	}
	return out, true
}
