package conf

// JSONConfiguration holds the options specific to JSON files.
type JSONConfiguration struct {
	Parser    JSONParser    `json:"parser"`
	Formatter JSONFormatter `json:"formatter"`
}

// PartialJSONConfiguration is the optional form of JSONConfiguration.
type PartialJSONConfiguration struct {
	Parser    *PartialJSONParser    `json:"parser,omitempty"`
	Formatter *PartialJSONFormatter `json:"formatter,omitempty"`
}

// Resolve fills absent options with defaults, inheriting layout options
// from formatter.
func (p *PartialJSONConfiguration) Resolve(formatter FormatterConfiguration) JSONConfiguration {
	if p == nil {
		p = &PartialJSONConfiguration{}
	}
	return JSONConfiguration{
		Parser:    p.Parser.Resolve(),
		Formatter: p.Formatter.Resolve(formatter.layout()),
	}
}

// Merge overlays the options present in later.
func (p PartialJSONConfiguration) Merge(later PartialJSONConfiguration) PartialJSONConfiguration {
	return PartialJSONConfiguration{
		Parser:    mergePtr(p.Parser, later.Parser, PartialJSONParser.Merge),
		Formatter: mergePtr(p.Formatter, later.Formatter, PartialJSONFormatter.Merge),
	}
}

// JSONParser holds the JSON parsing options.
type JSONParser struct {
	AllowComments       bool `json:"allowComments"`
	AllowTrailingCommas bool `json:"allowTrailingCommas"`
}

type PartialJSONParser struct {
	AllowComments       *bool `json:"allowComments,omitempty"`
	AllowTrailingCommas *bool `json:"allowTrailingCommas,omitempty"`
}

func (p *PartialJSONParser) Resolve() JSONParser {
	if p == nil {
		return JSONParser{}
	}
	return JSONParser{
		AllowComments:       orDefault(p.AllowComments, false),
		AllowTrailingCommas: orDefault(p.AllowTrailingCommas, false),
	}
}

func (p PartialJSONParser) Merge(later PartialJSONParser) PartialJSONParser {
	return PartialJSONParser{
		AllowComments:       pick(p.AllowComments, later.AllowComments),
		AllowTrailingCommas: pick(p.AllowTrailingCommas, later.AllowTrailingCommas),
	}
}

// JSONFormatter holds the JSON formatting options.
type JSONFormatter struct {
	Enabled        bool               `json:"enabled"`
	TrailingCommas JSONTrailingCommas `json:"trailingCommas"`
	IndentStyle    IndentStyle        `json:"indentStyle"`
	IndentWidth    IndentWidth        `json:"indentWidth"`
	LineEnding     LineEnding         `json:"lineEnding"`
	LineWidth      LineWidth          `json:"lineWidth"`
}

// PartialJSONFormatter is the optional form of JSONFormatter.
type PartialJSONFormatter struct {
	Enabled        *bool               `json:"enabled,omitempty"`
	TrailingCommas *JSONTrailingCommas `json:"trailingCommas,omitempty"`
	IndentStyle    *IndentStyle        `json:"indentStyle,omitempty"`
	IndentWidth    *IndentWidth        `json:"indentWidth,omitempty"`
	LineEnding     *LineEnding         `json:"lineEnding,omitempty"`
	LineWidth      *LineWidth          `json:"lineWidth,omitempty"`
}

// Resolve fills absent layout options from fallback and the rest with
// defaults.
func (p *PartialJSONFormatter) Resolve(fallback layout) JSONFormatter {
	if p == nil {
		p = &PartialJSONFormatter{}
	}
	return JSONFormatter{
		Enabled:        orDefault(p.Enabled, true),
		TrailingCommas: orDefault(p.TrailingCommas, JSONTrailingCommasNone),
		IndentStyle:    orDefault(p.IndentStyle, fallback.IndentStyle),
		IndentWidth:    orDefault(p.IndentWidth, fallback.IndentWidth),
		LineEnding:     orDefault(p.LineEnding, fallback.LineEnding),
		LineWidth:      orDefault(p.LineWidth, fallback.LineWidth),
	}
}

func (p PartialJSONFormatter) Merge(later PartialJSONFormatter) PartialJSONFormatter {
	return PartialJSONFormatter{
		Enabled:        pick(p.Enabled, later.Enabled),
		TrailingCommas: pick(p.TrailingCommas, later.TrailingCommas),
		IndentStyle:    pick(p.IndentStyle, later.IndentStyle),
		IndentWidth:    pick(p.IndentWidth, later.IndentWidth),
		LineEnding:     pick(p.LineEnding, later.LineEnding),
		LineWidth:      pick(p.LineWidth, later.LineWidth),
	}
}
