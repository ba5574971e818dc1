package conf

// CSSConfiguration holds the options specific to CSS files. The CSS
// formatter is opt-in.
type CSSConfiguration struct {
	Parser    CSSParser    `json:"parser"`
	Formatter CSSFormatter `json:"formatter"`
}

// PartialCSSConfiguration is the optional form of CSSConfiguration.
type PartialCSSConfiguration struct {
	Parser    *PartialCSSParser    `json:"parser,omitempty"`
	Formatter *PartialCSSFormatter `json:"formatter,omitempty"`
}

// Resolve fills absent options with defaults. The formatter inherits the
// layout of the resolved top-level formatter.
func (p *PartialCSSConfiguration) Resolve(formatter FormatterConfiguration) CSSConfiguration {
	if p == nil {
		p = &PartialCSSConfiguration{}
	}
	return CSSConfiguration{
		Parser:    p.Parser.Resolve(),
		Formatter: p.Formatter.Resolve(formatter.layout()),
	}
}

// Merge overlays the options present in later.
func (p PartialCSSConfiguration) Merge(later PartialCSSConfiguration) PartialCSSConfiguration {
	return PartialCSSConfiguration{
		Parser:    mergePtr(p.Parser, later.Parser, PartialCSSParser.Merge),
		Formatter: mergePtr(p.Formatter, later.Formatter, PartialCSSFormatter.Merge),
	}
}

// CSSParser holds the CSS parsing options.
type CSSParser struct {
	CSSModules             bool `json:"cssModules"`
	AllowWrongLineComments bool `json:"allowWrongLineComments"`
}

type PartialCSSParser struct {
	CSSModules             *bool `json:"cssModules,omitempty"`
	AllowWrongLineComments *bool `json:"allowWrongLineComments,omitempty"`
}

func (p *PartialCSSParser) Resolve() CSSParser {
	if p == nil {
		return CSSParser{}
	}
	return CSSParser{
		CSSModules:             orDefault(p.CSSModules, false),
		AllowWrongLineComments: orDefault(p.AllowWrongLineComments, false),
	}
}

func (p PartialCSSParser) Merge(later PartialCSSParser) PartialCSSParser {
	return PartialCSSParser{
		CSSModules:             pick(p.CSSModules, later.CSSModules),
		AllowWrongLineComments: pick(p.AllowWrongLineComments, later.AllowWrongLineComments),
	}
}

// CSSFormatter holds the CSS formatting options. It is disabled unless
// enabled explicitly.
type CSSFormatter struct {
	Enabled     bool        `json:"enabled"`
	QuoteStyle  QuoteStyle  `json:"quoteStyle"`
	IndentStyle IndentStyle `json:"indentStyle"`
	IndentWidth IndentWidth `json:"indentWidth"`
	LineEnding  LineEnding  `json:"lineEnding"`
	LineWidth   LineWidth   `json:"lineWidth"`
}

// PartialCSSFormatter is the optional form of CSSFormatter. Absent layout
// options are inherited from the top-level formatter.
type PartialCSSFormatter struct {
	Enabled     *bool        `json:"enabled,omitempty"`
	QuoteStyle  *QuoteStyle  `json:"quoteStyle,omitempty"`
	IndentStyle *IndentStyle `json:"indentStyle,omitempty"`
	IndentWidth *IndentWidth `json:"indentWidth,omitempty"`
	LineEnding  *LineEnding  `json:"lineEnding,omitempty"`
	LineWidth   *LineWidth   `json:"lineWidth,omitempty"`
}

// Resolve fills absent layout options from fallback and the rest with
// defaults.
func (p *PartialCSSFormatter) Resolve(fallback layout) CSSFormatter {
	if p == nil {
		p = &PartialCSSFormatter{}
	}
	return CSSFormatter{
		Enabled:     orDefault(p.Enabled, false),
		QuoteStyle:  orDefault(p.QuoteStyle, QuoteStyleDouble),
		IndentStyle: orDefault(p.IndentStyle, fallback.IndentStyle),
		IndentWidth: orDefault(p.IndentWidth, fallback.IndentWidth),
		LineEnding:  orDefault(p.LineEnding, fallback.LineEnding),
		LineWidth:   orDefault(p.LineWidth, fallback.LineWidth),
	}
}

func (p PartialCSSFormatter) Merge(later PartialCSSFormatter) PartialCSSFormatter {
	return PartialCSSFormatter{
		Enabled:     pick(p.Enabled, later.Enabled),
		QuoteStyle:  pick(p.QuoteStyle, later.QuoteStyle),
		IndentStyle: pick(p.IndentStyle, later.IndentStyle),
		IndentWidth: pick(p.IndentWidth, later.IndentWidth),
		LineEnding:  pick(p.LineEnding, later.LineEnding),
		LineWidth:   pick(p.LineWidth, later.LineWidth),
	}
}
