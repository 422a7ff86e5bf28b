package llm

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/unmarco/tickengine/internal/ai"
)

// Parser turns a raw response string into blackboard writes.
type Parser func(response string, bb *ai.Blackboard) error

// stripCodeFences removes a single leading/trailing ``` or ```json
// fence, the common wrapper models place around JSON payloads.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		firstLine := strings.TrimSpace(s[:nl])
		if firstLine == "" || strings.EqualFold(firstLine, "json") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DefaultParser strips markdown code fences, parses the remainder as
// JSON via gjson, requires a top-level object, and shallow-merges its
// keys into blackboard.Data["strategy"]. Malformed JSON or a non-object
// payload is reported as an error.
func DefaultParser(response string, bb *ai.Blackboard) error {
	cleaned := stripCodeFences(response)
	if !gjson.Valid(cleaned) {
		return fmt.Errorf("llm: response is not valid JSON")
	}
	result := gjson.Parse(cleaned)
	if !result.IsObject() {
		return fmt.Errorf("llm: response must be a top-level JSON object")
	}

	strategy, _ := bb.Get("strategy")
	merged, ok := strategy.(map[string]any)
	if !ok {
		merged = make(map[string]any)
	}
	result.ForEach(func(key, value gjson.Result) bool {
		merged[key.String()] = value.Value()
		return true
	})
	bb.Set("strategy", merged)
	return nil
}
