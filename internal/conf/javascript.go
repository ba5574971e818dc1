package conf

// JavascriptConfiguration holds the options specific to JavaScript and
// TypeScript files.
type JavascriptConfiguration struct {
	Formatter JavascriptFormatter `json:"formatter"`
	Parser    JavascriptParser    `json:"parser"`
	// Globals are names the linter treats as declared.
	Globals    StringSet  `json:"globals"`
	JsxRuntime JsxRuntime `json:"jsxRuntime"`
}

// PartialJavascriptConfiguration is the optional form of
// JavascriptConfiguration.
type PartialJavascriptConfiguration struct {
	Formatter  *PartialJavascriptFormatter `json:"formatter,omitempty"`
	Parser     *PartialJavascriptParser    `json:"parser,omitempty"`
	Globals    StringSet                   `json:"globals,omitempty"`
	JsxRuntime *JsxRuntime                 `json:"jsxRuntime,omitempty"`
}

// Resolve fills absent options with defaults, inheriting layout options
// from formatter.
func (p *PartialJavascriptConfiguration) Resolve(formatter FormatterConfiguration) JavascriptConfiguration {
	if p == nil {
		p = &PartialJavascriptConfiguration{}
	}
	return JavascriptConfiguration{
		Formatter:  p.Formatter.Resolve(formatter.layout()),
		Parser:     p.Parser.Resolve(),
		Globals:    p.Globals.clone(),
		JsxRuntime: orDefault(p.JsxRuntime, JsxRuntimeTransparent),
	}
}

func (p PartialJavascriptConfiguration) Merge(later PartialJavascriptConfiguration) PartialJavascriptConfiguration {
	return PartialJavascriptConfiguration{
		Formatter:  mergePtr(p.Formatter, later.Formatter, PartialJavascriptFormatter.Merge),
		Parser:     mergePtr(p.Parser, later.Parser, PartialJavascriptParser.Merge),
		Globals:    pickSet(p.Globals, later.Globals),
		JsxRuntime: pick(p.JsxRuntime, later.JsxRuntime),
	}
}

// JavascriptFormatter holds the formatting options for JavaScript and
// TypeScript.
type JavascriptFormatter struct {
	Enabled          bool             `json:"enabled"`
	QuoteStyle       QuoteStyle       `json:"quoteStyle"`
	JsxQuoteStyle    QuoteStyle       `json:"jsxQuoteStyle"`
	QuoteProperties  QuoteProperties  `json:"quoteProperties"`
	TrailingComma    TrailingComma    `json:"trailingComma"`
	Semicolons       Semicolons       `json:"semicolons"`
	ArrowParentheses ArrowParentheses `json:"arrowParentheses"`
	BracketSpacing   bool             `json:"bracketSpacing"`
	BracketSameLine  bool             `json:"bracketSameLine"`
	IndentStyle      IndentStyle      `json:"indentStyle"`
	IndentWidth      IndentWidth      `json:"indentWidth"`
	LineEnding       LineEnding       `json:"lineEnding"`
	LineWidth        LineWidth        `json:"lineWidth"`
}

// PartialJavascriptFormatter is the optional form of JavascriptFormatter.
type PartialJavascriptFormatter struct {
	Enabled          *bool             `json:"enabled,omitempty"`
	QuoteStyle       *QuoteStyle       `json:"quoteStyle,omitempty"`
	JsxQuoteStyle    *QuoteStyle       `json:"jsxQuoteStyle,omitempty"`
	QuoteProperties  *QuoteProperties  `json:"quoteProperties,omitempty"`
	TrailingComma    *TrailingComma    `json:"trailingComma,omitempty"`
	Semicolons       *Semicolons       `json:"semicolons,omitempty"`
	ArrowParentheses *ArrowParentheses `json:"arrowParentheses,omitempty"`
	BracketSpacing   *bool             `json:"bracketSpacing,omitempty"`
	BracketSameLine  *bool             `json:"bracketSameLine,omitempty"`
	IndentStyle      *IndentStyle      `json:"indentStyle,omitempty"`
	IndentWidth      *IndentWidth      `json:"indentWidth,omitempty"`
	LineEnding       *LineEnding       `json:"lineEnding,omitempty"`
	LineWidth        *LineWidth        `json:"lineWidth,omitempty"`
}

// Resolve fills absent layout options from the top-level formatter before
// falling back to the hard defaults.
func (p *PartialJavascriptFormatter) Resolve(fallback layout) JavascriptFormatter {
	if p == nil {
		p = &PartialJavascriptFormatter{}
	}
	return JavascriptFormatter{
		Enabled:          orDefault(p.Enabled, true),
		QuoteStyle:       orDefault(p.QuoteStyle, QuoteStyleDouble),
		JsxQuoteStyle:    orDefault(p.JsxQuoteStyle, QuoteStyleDouble),
		QuoteProperties:  orDefault(p.QuoteProperties, QuotePropertiesAsNeeded),
		TrailingComma:    orDefault(p.TrailingComma, TrailingCommaAll),
		Semicolons:       orDefault(p.Semicolons, SemicolonsAlways),
		ArrowParentheses: orDefault(p.ArrowParentheses, ArrowParenthesesAlways),
		BracketSpacing:   orDefault(p.BracketSpacing, true),
		BracketSameLine:  orDefault(p.BracketSameLine, false),
		IndentStyle:      orDefault(p.IndentStyle, fallback.IndentStyle),
		IndentWidth:      orDefault(p.IndentWidth, fallback.IndentWidth),
		LineEnding:       orDefault(p.LineEnding, fallback.LineEnding),
		LineWidth:        orDefault(p.LineWidth, fallback.LineWidth),
	}
}

// Merge overlays the options present in later.
func (p PartialJavascriptFormatter) Merge(later PartialJavascriptFormatter) PartialJavascriptFormatter {
	return PartialJavascriptFormatter{
		Enabled:          pick(p.Enabled, later.Enabled),
		QuoteStyle:       pick(p.QuoteStyle, later.QuoteStyle),
		JsxQuoteStyle:    pick(p.JsxQuoteStyle, later.JsxQuoteStyle),
		QuoteProperties:  pick(p.QuoteProperties, later.QuoteProperties),
		TrailingComma:    pick(p.TrailingComma, later.TrailingComma),
		Semicolons:       pick(p.Semicolons, later.Semicolons),
		ArrowParentheses: pick(p.ArrowParentheses, later.ArrowParentheses),
		BracketSpacing:   pick(p.BracketSpacing, later.BracketSpacing),
		BracketSameLine:  pick(p.BracketSameLine, later.BracketSameLine),
		IndentStyle:      pick(p.IndentStyle, later.IndentStyle),
		IndentWidth:      pick(p.IndentWidth, later.IndentWidth),
		LineEnding:       pick(p.LineEnding, later.LineEnding),
		LineWidth:        pick(p.LineWidth, later.LineWidth),
	}
}

// JavascriptParser holds the JavaScript parsing options.
type JavascriptParser struct {
	// UnsafeParameterDecoratorsEnabled allows decorators on parameters, which
	// are not part of the standard.
	UnsafeParameterDecoratorsEnabled bool `json:"unsafeParameterDecoratorsEnabled"`
}

type PartialJavascriptParser struct {
	UnsafeParameterDecoratorsEnabled *bool `json:"unsafeParameterDecoratorsEnabled,omitempty"`
}

func (p *PartialJavascriptParser) Resolve() JavascriptParser {
	if p == nil {
		return JavascriptParser{}
	}
	return JavascriptParser{
		UnsafeParameterDecoratorsEnabled: orDefault(p.UnsafeParameterDecoratorsEnabled, false),
	}
}

func (p PartialJavascriptParser) Merge(later PartialJavascriptParser) PartialJavascriptParser {
	return PartialJavascriptParser{
		UnsafeParameterDecoratorsEnabled: pick(p.UnsafeParameterDecoratorsEnabled, later.UnsafeParameterDecoratorsEnabled),
	}
}
