package conf

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringSet is an ordered list of unique strings. A nil StringSet is "absent",
// an empty non-nil one is "present and empty".
type StringSet []string

// UnmarshalJSON drops duplicate entries, keeping the first occurrence.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	set := make(StringSet, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	*s = set
	return nil
}

// clone returns a copy so that resolved configurations never share backing
// arrays with the fragments they were built from.
func (s StringSet) clone() StringSet {
	if s == nil {
		return nil
	}
	return append(StringSet{}, s...)
}

// IndentStyle is the character used for indentation.
type IndentStyle string

const (
	IndentStyleTab   IndentStyle = "tab"
	IndentStyleSpace IndentStyle = "space"
)

func (v *IndentStyle) UnmarshalText(text []byte) error {
	return parseEnum(v, text, IndentStyleTab, IndentStyleSpace)
}

// LineEnding is the line terminator written by the formatter.
type LineEnding string

const (
	LineEndingLf   LineEnding = "lf"
	LineEndingCrlf LineEnding = "crlf"
	LineEndingCr   LineEnding = "cr"
)

func (v *LineEnding) UnmarshalText(text []byte) error {
	return parseEnum(v, text, LineEndingLf, LineEndingCrlf, LineEndingCr)
}

// QuoteStyle is the preferred quote character for strings.
type QuoteStyle string

const (
	QuoteStyleDouble QuoteStyle = "double"
	QuoteStyleSingle QuoteStyle = "single"
)

func (v *QuoteStyle) UnmarshalText(text []byte) error {
	return parseEnum(v, text, QuoteStyleDouble, QuoteStyleSingle)
}

// QuoteProperties controls quoting of object property names.
type QuoteProperties string

const (
	QuotePropertiesAsNeeded QuoteProperties = "asNeeded"
	QuotePropertiesPreserve QuoteProperties = "preserve"
)

func (v *QuoteProperties) UnmarshalText(text []byte) error {
	return parseEnum(v, text, QuotePropertiesAsNeeded, QuotePropertiesPreserve)
}

// TrailingComma is the trailing comma policy for JavaScript.
type TrailingComma string

const (
	TrailingCommaAll  TrailingComma = "all"
	TrailingCommaES5  TrailingComma = "es5"
	TrailingCommaNone TrailingComma = "none"
)

func (v *TrailingComma) UnmarshalText(text []byte) error {
	return parseEnum(v, text, TrailingCommaAll, TrailingCommaES5, TrailingCommaNone)
}

// JSONTrailingCommas is the trailing comma policy for JSON documents, which
// do not know about the ES5 flavour.
type JSONTrailingCommas string

const (
	JSONTrailingCommasNone JSONTrailingCommas = "none"
	JSONTrailingCommasAll  JSONTrailingCommas = "all"
)

func (v *JSONTrailingCommas) UnmarshalText(text []byte) error {
	return parseEnum(v, text, JSONTrailingCommasNone, JSONTrailingCommasAll)
}

type Semicolons string

const (
	SemicolonsAlways   Semicolons = "always"
	SemicolonsAsNeeded Semicolons = "asNeeded"
)

func (v *Semicolons) UnmarshalText(text []byte) error {
	return parseEnum(v, text, SemicolonsAlways, SemicolonsAsNeeded)
}

// ArrowParentheses controls parentheses around a lone arrow function
// parameter.
type ArrowParentheses string

const (
	ArrowParenthesesAlways   ArrowParentheses = "always"
	ArrowParenthesesAsNeeded ArrowParentheses = "asNeeded"
)

func (v *ArrowParentheses) UnmarshalText(text []byte) error {
	return parseEnum(v, text, ArrowParenthesesAlways, ArrowParenthesesAsNeeded)
}

// JsxRuntime tells the linter whether React must be in scope for JSX.
type JsxRuntime string

const (
	JsxRuntimeTransparent  JsxRuntime = "transparent"
	JsxRuntimeReactClassic JsxRuntime = "reactClassic"
)

func (v *JsxRuntime) UnmarshalText(text []byte) error {
	return parseEnum(v, text, JsxRuntimeTransparent, JsxRuntimeReactClassic)
}

// VcsClientKind is the version control system the project uses.
type VcsClientKind string

const VcsClientKindGit VcsClientKind = "git"

func (v *VcsClientKind) UnmarshalText(text []byte) error {
	return parseEnum(v, text, VcsClientKindGit)
}

func parseEnum[T ~string](dst *T, text []byte, allowed ...T) error {
	v := T(text)
	for _, a := range allowed {
		if v == a {
			*dst = v
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = strconv.Quote(string(a))
	}
	return fmt.Errorf("unknown value %q, expected one of %s", string(text), strings.Join(names, ", "))
}

// IndentWidth is the number of spaces of one indentation level.
type IndentWidth uint8

const maxIndentWidth = 24

// ParseIndentWidth parses and range-checks an indentation width.
func ParseIndentWidth(s string) (IndentWidth, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid indent width %q", s)
	}
	if n > maxIndentWidth {
		return 0, fmt.Errorf("indent width %d is out of range 0..%d", n, maxIndentWidth)
	}
	return IndentWidth(n), nil
}

func (w *IndentWidth) UnmarshalJSON(data []byte) error {
	v, err := ParseIndentWidth(string(data))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// LineWidth is the column at which the printer wraps.
type LineWidth uint16

const (
	minLineWidth = 1
	maxLineWidth = 320
)

// ParseLineWidth parses and range-checks a line width.
func ParseLineWidth(s string) (LineWidth, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid line width %q", s)
	}
	if n < minLineWidth || n > maxLineWidth {
		return 0, fmt.Errorf("line width %d is out of range %d..%d", n, minLineWidth, maxLineWidth)
	}
	return LineWidth(n), nil
}

func (w *LineWidth) UnmarshalJSON(data []byte) error {
	v, err := ParseLineWidth(string(data))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// orDefault returns *v when present and def otherwise.
func orDefault[T any](v *T, def T) T {
	if v != nil {
		return *v
	}
	return def
}

// pick returns the later value when it is present.
func pick[T any](earlier, later *T) *T {
	if later != nil {
		return later
	}
	return earlier
}

// pickSet replaces the earlier set wholesale when the later one is present.
func pickSet(earlier, later StringSet) StringSet {
	if later != nil {
		return later
	}
	return earlier
}

// mergePtr merges two optional aggregates, recursing when both are present.
func mergePtr[T any](earlier, later *T, merge func(T, T) T) *T {
	switch {
	case earlier == nil:
		return later
	case later == nil:
		return earlier
	}
	merged := merge(*earlier, *later)
	return &merged
}

func ptr[T any](v T) *T { return &v }
