package interpret

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		outcome     Outcome
		code        string
		explanation string
	}{
		{
			name:        "exact object",
			text:        `{"code":"X","explanation":"Y"}`,
			outcome:     Structured,
			code:        "X",
			explanation: "Y",
		},
		{
			name:        "surrounding prose",
			text:        "Here you go: {\"code\":\"X\",\"explanation\":\"Y\"} thanks",
			outcome:     Structured,
			code:        "X",
			explanation: "Y",
		},
		{
			name:    "no braces",
			text:    "sorry, I can't",
			outcome: NoStructure,
		},
		{
			name:    "object without code",
			text:    `{"explanation":"only words"}`,
			outcome: MissingCode,
		},
		{
			name:    "code of wrong type",
			text:    `{"code": 42}`,
			outcome: MissingCode,
		},
		{
			name:        "markdown fence",
			text:        "```json\n{\"code\":\"const A = () => null;\",\"explanation\":\"e\"}\n```",
			outcome:     Structured,
			code:        "const A = () => null;",
			explanation: "e",
		},
		{
			name:        "braces inside string literals",
			text:        "Result: {\"code\":\"function A() { return <div style={{color: \\\"red\\\"}}>}</div>; }\",\"explanation\":\"uses } and {\"} done",
			outcome:     Structured,
			code:        "function A() { return <div style={{color: \"red\"}}>}</div>; }",
			explanation: "uses } and {",
		},
		{
			name:    "first balanced span invalid",
			text:    "{not json} then {\"code\":\"B\"}",
			outcome: NoStructure,
		},
		{
			name:    "malformed outer object hides inner code",
			text:    `{"wrapper": {"code":"inner"}, broken}`,
			outcome: NoStructure,
		},
		{
			name:        "unclosed brace before object",
			text:        "oops { here it is: {\"code\":\"C\"}",
			outcome:     Structured,
			code:        "C",
			explanation: "",
		},
		{
			name:    "unbalanced",
			text:    `{"code":"X"`,
			outcome: NoStructure,
		},
		{
			name:    "top-level array",
			text:    `[1,2,3]`,
			outcome: NoStructure,
		},
		{
			name:    "empty",
			text:    "",
			outcome: NoStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.text)
			if r.Outcome != tt.outcome {
				t.Fatalf("expected %s, got %s", tt.outcome, r.Outcome)
			}
			if r.HasCode() != (tt.outcome == Structured) {
				t.Fatalf("HasCode mismatch for %s", r.Outcome)
			}
			if tt.outcome != Structured {
				return
			}
			if r.Component.Code != tt.code {
				t.Fatalf("code = %q, want %q", r.Component.Code, tt.code)
			}
			if r.Component.Explanation != tt.explanation {
				t.Fatalf("explanation = %q, want %q", r.Component.Explanation, tt.explanation)
			}
		})
	}
}

func TestParseKeepsExtraFields(t *testing.T) {
	r := Parse(`{"code":"X","explanation":"Y","extra":true}`)
	if r.Fields["extra"] != true {
		t.Fatalf("expected extra field to survive, got %v", r.Fields)
	}

	r = Parse(`{"explanation":"only"}`)
	if r.Fields["explanation"] != "only" {
		t.Fatalf("expected fields on missing-code result, got %v", r.Fields)
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"{", "}", "{{{{", "}}}}{", `{"a":"\`, "\"{\"", strings.Repeat("{", 1000),
		"```\n```", "```json\n{\n```",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse(%q) panicked: %v", in, r)
				}
			}()
			Parse(in)
		}()
	}
}
