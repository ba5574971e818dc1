package conf

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Overrides is an ordered list of path-scoped configuration deltas. When two
// matching patterns set the same field, the one listed later wins.
type Overrides []OverridePattern

// OverridePattern applies its settings to the files matched by at least one
// Include pattern and by none of the Ignore patterns.
type OverridePattern struct {
	Ignore          StringSet                             `json:"ignore,omitempty"`
	Include         StringSet                             `json:"include,omitempty"`
	Formatter       *OverrideFormatterConfiguration       `json:"formatter,omitempty"`
	Linter          *OverrideLinterConfiguration          `json:"linter,omitempty"`
	OrganizeImports *OverrideOrganizeImportsConfiguration `json:"organizeImports,omitempty"`
	Javascript      *PartialJavascriptConfiguration       `json:"javascript,omitempty"`
	JSON            *PartialJSONConfiguration             `json:"json,omitempty"`
	CSS             *PartialCSSConfiguration              `json:"css,omitempty"`
}

// OverrideFormatterConfiguration is the subset of formatter options an
// override may set.
type OverrideFormatterConfiguration struct {
	Enabled          *bool        `json:"enabled,omitempty"`
	FormatWithErrors *bool        `json:"formatWithErrors,omitempty"`
	IndentStyle      *IndentStyle `json:"indentStyle,omitempty"`
	IndentWidth      *IndentWidth `json:"indentWidth,omitempty"`
	LineEnding       *LineEnding  `json:"lineEnding,omitempty"`
	LineWidth        *LineWidth   `json:"lineWidth,omitempty"`
}

type OverrideLinterConfiguration struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Rules   *Rules `json:"rules,omitempty"`
}

type OverrideOrganizeImportsConfiguration struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// Apply returns base with the delta of every pattern matching filePath merged
// on top, in declared order. filePath is interpreted relative to the
// configuration directory. Files matched by no pattern get base unchanged.
func (o Overrides) Apply(filePath string, base PartialConfiguration) (PartialConfiguration, error) {
	filePath = filepath.ToSlash(filePath)
	effective := base
	for _, pattern := range o {
		matched, err := pattern.Matches(filePath)
		if err != nil {
			return PartialConfiguration{}, err
		}
		if matched {
			effective = effective.Merge(pattern.delta())
		}
	}
	return effective, nil
}

// Matches reports whether the pattern applies to the slash-separated path.
func (p OverridePattern) Matches(filePath string) (bool, error) {
	included, err := matchAny(p.Include, filePath)
	if err != nil || !included {
		return false, err
	}
	ignored, err := matchAny(p.Ignore, filePath)
	if err != nil {
		return false, err
	}
	return !ignored, nil
}

// delta converts the pattern into the configuration fragment it contributes.
func (p OverridePattern) delta() PartialConfiguration {
	var delta PartialConfiguration
	if f := p.Formatter; f != nil {
		delta.Formatter = &PartialFormatterConfiguration{
			Enabled:          f.Enabled,
			FormatWithErrors: f.FormatWithErrors,
			IndentStyle:      f.IndentStyle,
			IndentWidth:      f.IndentWidth,
			LineEnding:       f.LineEnding,
			LineWidth:        f.LineWidth,
		}
	}
	if l := p.Linter; l != nil {
		delta.Linter = &PartialLinterConfiguration{
			Enabled: l.Enabled,
			Rules:   l.Rules,
		}
	}
	if oi := p.OrganizeImports; oi != nil {
		delta.OrganizeImports = &PartialOrganizeImports{Enabled: oi.Enabled}
	}
	delta.Javascript = p.Javascript
	delta.JSON = p.JSON
	delta.CSS = p.CSS
	return delta
}

// validate reports every malformed glob of the list.
func (o Overrides) validate() []error {
	var errs []error
	for i, pattern := range o {
		errs = append(errs, validatePatterns(fmt.Sprintf("overrides[%d].include", i), pattern.Include)...)
		errs = append(errs, validatePatterns(fmt.Sprintf("overrides[%d].ignore", i), pattern.Ignore)...)
	}
	return errs
}

func validatePatterns(field string, patterns StringSet) []error {
	var errs []error
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &Diagnostic{
				Kind:  ErrInvalidPattern,
				Field: fmt.Sprintf("%s[%d]", field, i),
				Err:   fmt.Errorf("%q: %w", pattern, doublestar.ErrBadPattern),
			})
		}
	}
	return errs
}

// matchAny matches filePath against Unix shell style patterns. Patterns that
// contain no separator also match against the base name, so "*.test.js"
// applies at any depth.
func matchAny(patterns StringSet, filePath string) (bool, error) {
	base := path.Base(filePath)
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, filePath)
		if err != nil {
			return false, &Diagnostic{
				Kind:  ErrInvalidPattern,
				Field: pattern,
				Err:   err,
			}
		}
		if !ok && !strings.Contains(pattern, "/") {
			ok, _ = doublestar.Match(pattern, base)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
