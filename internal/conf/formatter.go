package conf

// Hard defaults shared by the top-level and the language formatters.
const (
	DefaultIndentStyle = IndentStyleTab
	DefaultIndentWidth = IndentWidth(2)
	DefaultLineEnding  = LineEndingLf
	DefaultLineWidth   = LineWidth(80)
)

// FormatterConfiguration holds the generic formatter options. Language
// formatters fall back to these values.
type FormatterConfiguration struct {
	Enabled          bool        `json:"enabled"`
	FormatWithErrors bool        `json:"formatWithErrors"`
	IndentStyle      IndentStyle `json:"indentStyle"`
	IndentWidth      IndentWidth `json:"indentWidth"`
	LineEnding       LineEnding  `json:"lineEnding"`
	LineWidth        LineWidth   `json:"lineWidth"`
	Ignore           StringSet   `json:"ignore"`
	Include          StringSet   `json:"include"`
}

// PartialFormatterConfiguration is the optional form of
// FormatterConfiguration. A nil field was not set by the layer.
type PartialFormatterConfiguration struct {
	Enabled          *bool        `json:"enabled,omitempty"`
	FormatWithErrors *bool        `json:"formatWithErrors,omitempty"`
	IndentStyle      *IndentStyle `json:"indentStyle,omitempty"`
	IndentWidth      *IndentWidth `json:"indentWidth,omitempty"`
	LineEnding       *LineEnding  `json:"lineEnding,omitempty"`
	LineWidth        *LineWidth   `json:"lineWidth,omitempty"`
	Ignore           StringSet    `json:"ignore,omitempty"`
	Include          StringSet    `json:"include,omitempty"`
}

// IsDisabled reports whether the formatter was explicitly turned off.
func (p *PartialFormatterConfiguration) IsDisabled() bool {
	return p != nil && p.Enabled != nil && !*p.Enabled
}

// Resolve fills absent options with the hard defaults. It accepts a nil
// receiver.
func (p *PartialFormatterConfiguration) Resolve() FormatterConfiguration {
	if p == nil {
		p = &PartialFormatterConfiguration{}
	}
	return FormatterConfiguration{
		Enabled:          orDefault(p.Enabled, true),
		FormatWithErrors: orDefault(p.FormatWithErrors, false),
		IndentStyle:      orDefault(p.IndentStyle, DefaultIndentStyle),
		IndentWidth:      orDefault(p.IndentWidth, DefaultIndentWidth),
		LineEnding:       orDefault(p.LineEnding, DefaultLineEnding),
		LineWidth:        orDefault(p.LineWidth, DefaultLineWidth),
		Ignore:           p.Ignore.clone(),
		Include:          p.Include.clone(),
	}
}

// Merge returns p with every option present in later taken from later.
func (p PartialFormatterConfiguration) Merge(later PartialFormatterConfiguration) PartialFormatterConfiguration {
	return PartialFormatterConfiguration{
		Enabled:          pick(p.Enabled, later.Enabled),
		FormatWithErrors: pick(p.FormatWithErrors, later.FormatWithErrors),
		IndentStyle:      pick(p.IndentStyle, later.IndentStyle),
		IndentWidth:      pick(p.IndentWidth, later.IndentWidth),
		LineEnding:       pick(p.LineEnding, later.LineEnding),
		LineWidth:        pick(p.LineWidth, later.LineWidth),
		Ignore:           pickSet(p.Ignore, later.Ignore),
		Include:          pickSet(p.Include, later.Include),
	}
}

// layout is the part of a formatter configuration every language inherits
// from the top-level formatter.
type layout struct {
	IndentStyle IndentStyle
	IndentWidth IndentWidth
	LineEnding  LineEnding
	LineWidth   LineWidth
}

func (f FormatterConfiguration) layout() layout {
	return layout{
		IndentStyle: f.IndentStyle,
		IndentWidth: f.IndentWidth,
		LineEnding:  f.LineEnding,
		LineWidth:   f.LineWidth,
	}
}
