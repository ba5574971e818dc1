package conf

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected PartialConfiguration
		wantErr  error
		contains string
	}{
		{
			name:     "empty object",
			input:    `{}`,
			expected: PartialConfiguration{},
		},
		{
			name: "nested sections",
			input: `{
				"$schema": "./node_modules/@biomejs/biome/configuration_schema.json",
				"files": {"ignore": ["dist/**"], "maxSize": 2048},
				"formatter": {"indentWidth": 4, "lineEnding": "crlf"},
				"javascript": {"formatter": {"quoteStyle": "single"}, "globals": ["jest"]}
			}`,
			expected: PartialConfiguration{
				Schema: stringPtr("./node_modules/@biomejs/biome/configuration_schema.json"),
				Files: &PartialFilesConfiguration{
					Ignore:  StringSet{"dist/**"},
					MaxSize: ptr(uint64(2048)),
				},
				Formatter: &PartialFormatterConfiguration{
					IndentWidth: ptr(IndentWidth(4)),
					LineEnding:  ptr(LineEndingCrlf),
				},
				Javascript: &PartialJavascriptConfiguration{
					Formatter: &PartialJavascriptFormatter{QuoteStyle: ptr(QuoteStyleSingle)},
					Globals:   StringSet{"jest"},
				},
			},
		},
		{
			name: "comments and trailing commas",
			input: `{
				// line comment
				"linter": {
					"enabled": false, /* block */
				},
			}`,
			expected: PartialConfiguration{
				Linter: &PartialLinterConfiguration{Enabled: boolPtr(false)},
			},
		},
		{
			name:     "duplicate set entries are dropped",
			input:    `{"files": {"include": ["src/**", "lib/**", "src/**"]}}`,
			expected: PartialConfiguration{Files: &PartialFilesConfiguration{Include: StringSet{"src/**", "lib/**"}}},
		},
		{
			name:     "empty set stays present",
			input:    `{"files": {"ignore": []}}`,
			expected: PartialConfiguration{Files: &PartialFilesConfiguration{Ignore: StringSet{}}},
		},
		{
			name:     "unknown top-level key",
			input:    `{"unknownKey": true}`,
			wantErr:  ErrSchema,
			contains: "unknownKey",
		},
		{
			name:     "unknown nested key",
			input:    `{"formatter": {"indentSize": 2}}`,
			wantErr:  ErrSchema,
			contains: "indentSize",
		},
		{
			name:     "wrong type",
			input:    `{"formatter": {"enabled": "yes"}}`,
			wantErr:  ErrSchema,
			contains: "formatter.enabled",
		},
		{
			name:     "unknown enum value",
			input:    `{"formatter": {"indentStyle": "tabs"}}`,
			wantErr:  ErrSchema,
			contains: `"tabs"`,
		},
		{
			name:    "indent width out of range",
			input:   `{"formatter": {"indentWidth": 25}}`,
			wantErr: ErrSchema,
		},
		{
			name:    "line width out of range",
			input:   `{"formatter": {"lineWidth": 0}}`,
			wantErr: ErrSchema,
		},
		{
			name:     "zero max size",
			input:    `{"files": {"maxSize": 0}}`,
			wantErr:  ErrSchema,
			contains: "files.maxSize",
		},
		{
			name:     "invalid glob",
			input:    `{"linter": {"ignore": ["[abc"]}}`,
			wantErr:  ErrInvalidPattern,
			contains: "linter.ignore[0]",
		},
		{
			name:     "invalid override glob",
			input:    `{"overrides": [{"include": ["ok/**"]}, {"include": ["[abc"]}]}`,
			wantErr:  ErrInvalidPattern,
			contains: "overrides[1].include[0]",
		},
		{
			name:    "empty extends entry",
			input:   `{"extends": [""]}`,
			wantErr: ErrSchema,
		},
		{
			name:    "syntax error",
			input:   `{"formatter": {]`,
			wantErr: ErrParse,
		},
		{
			name:    "truncated document",
			input:   `{"formatter": {`,
			wantErr: ErrParse,
		},
		{
			name:    "content after the object",
			input:   `{} {}`,
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseConfiguration([]byte(tt.input), "biome.json")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseConfiguration() error = %v, want %v", err, tt.wantErr)
				}
				if !strings.Contains(err.Error(), "biome.json") {
					t.Errorf("error %q does not name the file", err)
				}
				if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
					t.Errorf("error %q does not mention %q", err, tt.contains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("ParseConfiguration() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConfigurationField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "wrong type", input: `{"formatter": {"enabled": "yes"}}`, field: "formatter.enabled"},
		{name: "top-level line width", input: `{"formatter": {"lineWidth": 999}}`, field: "formatter.lineWidth"},
		{name: "language line width", input: `{"javascript": {"formatter": {"lineWidth": 999}}}`, field: "javascript.formatter.lineWidth"},
		{name: "indent width", input: `{"json": {"formatter": {"indentWidth": 30}}}`, field: "json.formatter.indentWidth"},
		{name: "enum value", input: `{"formatter": {"indentStyle": "bogus"}}`, field: "formatter.indentStyle"},
		{name: "enum in override", input: `{"overrides": [{}, {"javascript": {"formatter": {"quoteStyle": "back"}}}]}`, field: "overrides[1].javascript.formatter.quoteStyle"},
		{name: "set of the wrong type", input: `{"files": {"ignore": "dist"}}`, field: "files.ignore"},
		{name: "unknown nested key", input: `{"css": {"parser": {"modules": true}}}`, field: "css.parser"},
		{name: "rule level", input: `{"linter": {"rules": {"style": {"noVar": "fatal"}}}}`, field: "linter.rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfiguration([]byte(tt.input), "biome.json")
			var d *Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("ParseConfiguration() error = %v, want a *Diagnostic", err)
			}
			if !errors.Is(err, ErrSchema) {
				t.Errorf("ParseConfiguration() error = %v, want %v", err, ErrSchema)
			}
			if d.Field != tt.field {
				t.Errorf("Field = %q, want %q", d.Field, tt.field)
			}
			if d.Path != "biome.json" {
				t.Errorf("Path = %q, want biome.json", d.Path)
			}
		})
	}
}

func TestParseRules(t *testing.T) {
	input := `{"linter": {"rules": {
		"recommended": false,
		"style": {
			"all": true,
			"noVar": "error",
			"useNamingConvention": {"level": "warn", "options": {"strictCase": false}}
		},
		"suspicious": {"recommended": true}
	}}}`

	partial, err := ParseConfiguration([]byte(input), "biome.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &Rules{
		Recommended: boolPtr(false),
		Groups: map[string]RuleGroup{
			"style": {
				All: boolPtr(true),
				Rules: map[string]RuleConfiguration{
					"noVar": {Level: RuleLevelError},
					"useNamingConvention": {
						Level:   RuleLevelWarn,
						Options: json.RawMessage(`{"strictCase": false}`),
					},
				},
			},
			"suspicious": {Recommended: boolPtr(true)},
		},
	}
	if diff := cmp.Diff(expected, partial.Linter.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{name: "unknown group", rules: `{"styles": {}}`},
		{name: "invalid rule name", rules: `{"style": {"no-var": "error"}}`},
		{name: "invalid level", rules: `{"style": {"noVar": "fatal"}}`},
		{name: "missing level", rules: `{"style": {"noVar": {"options": {}}}}`},
		{name: "unknown rule field", rules: `{"style": {"noVar": {"level": "warn", "fix": "safe"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"linter": {"rules": ` + tt.rules + `}}`
			if _, err := ParseConfiguration([]byte(input), "biome.json"); !errors.Is(err, ErrSchema) {
				t.Errorf("ParseConfiguration() error = %v, want %v", err, ErrSchema)
			}
		})
	}
}

func TestRulesMarshalRoundTrip(t *testing.T) {
	rules := Rules{
		Recommended: boolPtr(true),
		Groups: map[string]RuleGroup{
			"style": {Rules: map[string]RuleConfiguration{
				"noVar":    {Level: RuleLevelError},
				"useConst": {Level: RuleLevelWarn, Options: json.RawMessage(`{"a":1}`)},
			}},
		},
	}
	data, err := json.Marshal(rules)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"noVar":"error"`) {
		t.Errorf("rule without options should marshal as a bare level: %s", data)
	}

	var decoded Rules
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(rules, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
