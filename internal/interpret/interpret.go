// Package interpret recovers the {code, explanation} object from raw model output.
package interpret

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// Outcome classifies what Parse managed to recover.
type Outcome int

const (
	// NoStructure: no JSON object could be found in the text.
	NoStructure Outcome = iota
	// MissingCode: an object was found but it has no string "code" field.
	MissingCode
	// Structured: an object with a "code" string was found.
	Structured
)

func (o Outcome) String() string {
	switch o {
	case Structured:
		return "structured"
	case MissingCode:
		return "missing_code"
	default:
		return "no_structure"
	}
}

// Result is the outcome of interpreting one response.
type Result struct {
	Outcome Outcome
	// Fields is the decoded object as the model sent it, nil for NoStructure.
	Fields    map[string]any
	Component models.Component
}

// HasCode reports whether the result carries a component to store.
func (r Result) HasCode() bool {
	return r.Outcome == Structured
}

// fenceRegex matches a response wrapped entirely in one Markdown code fence.
var fenceRegex = regexp.MustCompile("(?s)^\\s*```[A-Za-z0-9_-]*[ \\t]*\\n(.*?)\\n?[ \\t]*```\\s*$")

// Parse tries the whole text as a JSON object first, then the first balanced
// {...} span. If that span does not decode, nothing is recovered. It never
// panics on malformed input.
func Parse(text string) Result {
	if m := fenceRegex.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	if obj, ok := decodeObject(text); ok {
		return classify(obj)
	}

	if span, ok := firstBalanced(text); ok {
		if obj, ok := decodeObject(span); ok {
			return classify(obj)
		}
	}
	return Result{Outcome: NoStructure}
}

// firstBalanced returns the first {...} span whose opening brace is closed.
// Braces that never close are skipped.
func firstBalanced(text string) (string, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchBrace(text, start); end > start {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func classify(obj map[string]any) Result {
	code, ok := obj["code"].(string)
	if !ok {
		return Result{Outcome: MissingCode, Fields: obj}
	}
	explanation, _ := obj["explanation"].(string)
	return Result{
		Outcome:   Structured,
		Fields:    obj,
		Component: models.Component{Code: code, Explanation: explanation},
	}
}

// matchBrace returns the index of the '}' closing the '{' at start, or -1.
func matchBrace(text string, start int) int {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
