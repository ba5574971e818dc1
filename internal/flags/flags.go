// Package flags mirrors the leaf fields of the configuration as command line
// flags. Values given on the command line form the highest precedence
// configuration fragment. Glob sets, globals, rules, extends and overrides
// are file-only and have no flag.
package flags

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/juliosouzam/biome/internal/conf"
	"github.com/juliosouzam/biome/internal/l10n"
)

type flagSpec struct {
	flag  cli.Flag
	apply func(c *cli.Context, p *conf.PartialConfiguration) error
}

// Flags returns a fresh set of configuration flags.
func Flags() []cli.Flag {
	specs := specs()
	out := make([]cli.Flag, len(specs))
	for i, s := range specs {
		out[i] = s.flag
	}
	return out
}

// Partial builds the configuration fragment of the flags set on c. Flags
// left unset contribute nothing.
func Partial(c *cli.Context) (conf.PartialConfiguration, error) {
	var p conf.PartialConfiguration
	var errs []error
	for _, s := range specs() {
		if err := s.apply(c, &p); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return conf.PartialConfiguration{}, err
	}
	return p, p.Validate()
}

func specs() []flagSpec {
	return []flagSpec{
		boolFlag("vcs-enabled", "Whether the VCS integration is enabled", func(p *conf.PartialConfiguration, v *bool) { vcs(p).Enabled = v }),
		valueFlag("vcs-client-kind", "The kind of VCS client: git", parseText[conf.VcsClientKind, *conf.VcsClientKind], func(p *conf.PartialConfiguration, v *conf.VcsClientKind) { vcs(p).ClientKind = v }),
		boolFlag("vcs-use-ignore-file", "Whether to use the VCS ignore file", func(p *conf.PartialConfiguration, v *bool) { vcs(p).UseIgnoreFile = v }),
		valueFlag("vcs-root", "The folder where the VCS metadata lives", parseString, func(p *conf.PartialConfiguration, v *string) { vcs(p).Root = v }),
		valueFlag("vcs-default-branch", "The main branch of the project", parseString, func(p *conf.PartialConfiguration, v *string) { vcs(p).DefaultBranch = v }),

		valueFlag("files-max-size", "The maximum allowed size for source code files in bytes", parseSize, func(p *conf.PartialConfiguration, v *uint64) { files(p).MaxSize = v }),
		boolFlag("files-ignore-unknown", "Do not emit diagnostics for files of unknown type", func(p *conf.PartialConfiguration, v *bool) { files(p).IgnoreUnknown = v }),

		boolFlag("formatter-enabled", "Whether the formatter is enabled", func(p *conf.PartialConfiguration, v *bool) { formatter(p).Enabled = v }),
		boolFlag("format-with-errors", "Format files with syntax errors", func(p *conf.PartialConfiguration, v *bool) { formatter(p).FormatWithErrors = v }),
		valueFlag("indent-style", "The indent style: tab or space", parseText[conf.IndentStyle, *conf.IndentStyle], func(p *conf.PartialConfiguration, v *conf.IndentStyle) { formatter(p).IndentStyle = v }),
		valueFlag("indent-width", "The size of the indentation", conf.ParseIndentWidth, func(p *conf.PartialConfiguration, v *conf.IndentWidth) { formatter(p).IndentWidth = v }),
		valueFlag("line-ending", "The line ending: lf, crlf or cr", parseText[conf.LineEnding, *conf.LineEnding], func(p *conf.PartialConfiguration, v *conf.LineEnding) { formatter(p).LineEnding = v }),
		valueFlag("line-width", "The maximum line width", conf.ParseLineWidth, func(p *conf.PartialConfiguration, v *conf.LineWidth) { formatter(p).LineWidth = v }),

		boolFlag("organize-imports-enabled", "Whether imports are sorted", func(p *conf.PartialConfiguration, v *bool) { organizeImports(p).Enabled = v }),
		boolFlag("linter-enabled", "Whether the linter is enabled", func(p *conf.PartialConfiguration, v *bool) { linter(p).Enabled = v }),

		boolFlag("javascript-formatter-enabled", "Whether JavaScript files are formatted", func(p *conf.PartialConfiguration, v *bool) { jsFormatter(p).Enabled = v }),
		valueFlag("javascript-formatter-indent-style", "The indent style of JavaScript files", parseText[conf.IndentStyle, *conf.IndentStyle], func(p *conf.PartialConfiguration, v *conf.IndentStyle) { jsFormatter(p).IndentStyle = v }),
		valueFlag("javascript-formatter-indent-width", "The indentation size of JavaScript files", conf.ParseIndentWidth, func(p *conf.PartialConfiguration, v *conf.IndentWidth) { jsFormatter(p).IndentWidth = v }),
		valueFlag("javascript-formatter-line-ending", "The line ending of JavaScript files", parseText[conf.LineEnding, *conf.LineEnding], func(p *conf.PartialConfiguration, v *conf.LineEnding) { jsFormatter(p).LineEnding = v }),
		valueFlag("javascript-formatter-line-width", "The line width of JavaScript files", conf.ParseLineWidth, func(p *conf.PartialConfiguration, v *conf.LineWidth) { jsFormatter(p).LineWidth = v }),
		valueFlag("quote-style", "The quotes of string literals: double or single", parseText[conf.QuoteStyle, *conf.QuoteStyle], func(p *conf.PartialConfiguration, v *conf.QuoteStyle) { jsFormatter(p).QuoteStyle = v }),
		valueFlag("jsx-quote-style", "The quotes of JSX attributes: double or single", parseText[conf.QuoteStyle, *conf.QuoteStyle], func(p *conf.PartialConfiguration, v *conf.QuoteStyle) { jsFormatter(p).JsxQuoteStyle = v }),
		valueFlag("quote-properties", "When object properties are quoted: asNeeded or preserve", parseText[conf.QuoteProperties, *conf.QuoteProperties], func(p *conf.PartialConfiguration, v *conf.QuoteProperties) { jsFormatter(p).QuoteProperties = v }),
		valueFlag("trailing-comma", "Trailing commas in multi-line structures: all, es5 or none", parseText[conf.TrailingComma, *conf.TrailingComma], func(p *conf.PartialConfiguration, v *conf.TrailingComma) { jsFormatter(p).TrailingComma = v }),
		valueFlag("semicolons", "When statements end with a semicolon: always or asNeeded", parseText[conf.Semicolons, *conf.Semicolons], func(p *conf.PartialConfiguration, v *conf.Semicolons) { jsFormatter(p).Semicolons = v }),
		valueFlag("arrow-parentheses", "Parentheses around sole arrow function parameters: always or asNeeded", parseText[conf.ArrowParentheses, *conf.ArrowParentheses], func(p *conf.PartialConfiguration, v *conf.ArrowParentheses) { jsFormatter(p).ArrowParentheses = v }),
		boolFlag("bracket-spacing", "Insert spaces around brackets of object literals", func(p *conf.PartialConfiguration, v *bool) { jsFormatter(p).BracketSpacing = v }),
		boolFlag("bracket-same-line", "Put the > of multi-line JSX elements on the last attribute line", func(p *conf.PartialConfiguration, v *bool) { jsFormatter(p).BracketSameLine = v }),
		boolFlag("javascript-parser-unsafe-parameter-decorators-enabled", "Allow decorators on parameters", func(p *conf.PartialConfiguration, v *bool) { jsParser(p).UnsafeParameterDecoratorsEnabled = v }),
		valueFlag("javascript-jsx-runtime", "The JSX runtime: transparent or reactClassic", parseText[conf.JsxRuntime, *conf.JsxRuntime], func(p *conf.PartialConfiguration, v *conf.JsxRuntime) { javascript(p).JsxRuntime = v }),

		boolFlag("json-formatter-enabled", "Whether JSON files are formatted", func(p *conf.PartialConfiguration, v *bool) { jsonFormatter(p).Enabled = v }),
		valueFlag("json-formatter-indent-style", "The indent style of JSON files", parseText[conf.IndentStyle, *conf.IndentStyle], func(p *conf.PartialConfiguration, v *conf.IndentStyle) { jsonFormatter(p).IndentStyle = v }),
		valueFlag("json-formatter-indent-width", "The indentation size of JSON files", conf.ParseIndentWidth, func(p *conf.PartialConfiguration, v *conf.IndentWidth) { jsonFormatter(p).IndentWidth = v }),
		valueFlag("json-formatter-line-ending", "The line ending of JSON files", parseText[conf.LineEnding, *conf.LineEnding], func(p *conf.PartialConfiguration, v *conf.LineEnding) { jsonFormatter(p).LineEnding = v }),
		valueFlag("json-formatter-line-width", "The line width of JSON files", conf.ParseLineWidth, func(p *conf.PartialConfiguration, v *conf.LineWidth) { jsonFormatter(p).LineWidth = v }),
		valueFlag("json-formatter-trailing-commas", "Trailing commas in JSON files: none or all", parseText[conf.JSONTrailingCommas, *conf.JSONTrailingCommas], func(p *conf.PartialConfiguration, v *conf.JSONTrailingCommas) { jsonFormatter(p).TrailingCommas = v }),
		boolFlag("json-parse-allow-comments", "Allow comments in JSON files", func(p *conf.PartialConfiguration, v *bool) { jsonParser(p).AllowComments = v }),
		boolFlag("json-parse-allow-trailing-commas", "Allow trailing commas in JSON files", func(p *conf.PartialConfiguration, v *bool) { jsonParser(p).AllowTrailingCommas = v }),

		boolFlag("css-formatter-enabled", "Whether CSS files are formatted", func(p *conf.PartialConfiguration, v *bool) { cssFormatter(p).Enabled = v }),
		valueFlag("css-formatter-indent-style", "The indent style of CSS files", parseText[conf.IndentStyle, *conf.IndentStyle], func(p *conf.PartialConfiguration, v *conf.IndentStyle) { cssFormatter(p).IndentStyle = v }),
		valueFlag("css-formatter-indent-width", "The indentation size of CSS files", conf.ParseIndentWidth, func(p *conf.PartialConfiguration, v *conf.IndentWidth) { cssFormatter(p).IndentWidth = v }),
		valueFlag("css-formatter-line-ending", "The line ending of CSS files", parseText[conf.LineEnding, *conf.LineEnding], func(p *conf.PartialConfiguration, v *conf.LineEnding) { cssFormatter(p).LineEnding = v }),
		valueFlag("css-formatter-line-width", "The line width of CSS files", conf.ParseLineWidth, func(p *conf.PartialConfiguration, v *conf.LineWidth) { cssFormatter(p).LineWidth = v }),
		valueFlag("css-formatter-quote-style", "The quotes of CSS strings: double or single", parseText[conf.QuoteStyle, *conf.QuoteStyle], func(p *conf.PartialConfiguration, v *conf.QuoteStyle) { cssFormatter(p).QuoteStyle = v }),
		boolFlag("css-parse-css-modules", "Enable parsing of CSS modules", func(p *conf.PartialConfiguration, v *bool) { cssParser(p).CSSModules = v }),
		boolFlag("css-parse-allow-wrong-line-comments", "Allow // comments in CSS files", func(p *conf.PartialConfiguration, v *bool) { cssParser(p).AllowWrongLineComments = v }),
	}
}

func boolFlag(name, usage string, set func(*conf.PartialConfiguration, *bool)) flagSpec {
	return flagSpec{
		flag: &cli.BoolFlag{Name: name, Usage: l10n.T(usage)},
		apply: func(c *cli.Context, p *conf.PartialConfiguration) error {
			if c.IsSet(name) {
				v := c.Bool(name)
				set(p, &v)
			}
			return nil
		},
	}
}

func valueFlag[T any](name, usage string, parse func(string) (T, error), set func(*conf.PartialConfiguration, *T)) flagSpec {
	return flagSpec{
		flag: &cli.StringFlag{Name: name, Usage: l10n.T(usage)},
		apply: func(c *cli.Context, p *conf.PartialConfiguration) error {
			if !c.IsSet(name) {
				return nil
			}
			v, err := parse(c.String(name))
			if err != nil {
				return &conf.Diagnostic{Kind: conf.ErrSchema, Field: "--" + name, Err: err}
			}
			set(p, &v)
			return nil
		},
	}
}

func parseText[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](s string) (T, error) {
	var v T
	err := PT(&v).UnmarshalText([]byte(s))
	return v, err
}

func parseString(s string) (string, error) { return s, nil }

func parseSize(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n, nil
}

func vcs(p *conf.PartialConfiguration) *conf.PartialVcsConfiguration {
	if p.Vcs == nil {
		p.Vcs = &conf.PartialVcsConfiguration{}
	}
	return p.Vcs
}

func files(p *conf.PartialConfiguration) *conf.PartialFilesConfiguration {
	if p.Files == nil {
		p.Files = &conf.PartialFilesConfiguration{}
	}
	return p.Files
}

func formatter(p *conf.PartialConfiguration) *conf.PartialFormatterConfiguration {
	if p.Formatter == nil {
		p.Formatter = &conf.PartialFormatterConfiguration{}
	}
	return p.Formatter
}

func organizeImports(p *conf.PartialConfiguration) *conf.PartialOrganizeImports {
	if p.OrganizeImports == nil {
		p.OrganizeImports = &conf.PartialOrganizeImports{}
	}
	return p.OrganizeImports
}

func linter(p *conf.PartialConfiguration) *conf.PartialLinterConfiguration {
	if p.Linter == nil {
		p.Linter = &conf.PartialLinterConfiguration{}
	}
	return p.Linter
}

func javascript(p *conf.PartialConfiguration) *conf.PartialJavascriptConfiguration {
	if p.Javascript == nil {
		p.Javascript = &conf.PartialJavascriptConfiguration{}
	}
	return p.Javascript
}

func jsFormatter(p *conf.PartialConfiguration) *conf.PartialJavascriptFormatter {
	js := javascript(p)
	if js.Formatter == nil {
		js.Formatter = &conf.PartialJavascriptFormatter{}
	}
	return js.Formatter
}

func jsParser(p *conf.PartialConfiguration) *conf.PartialJavascriptParser {
	js := javascript(p)
	if js.Parser == nil {
		js.Parser = &conf.PartialJavascriptParser{}
	}
	return js.Parser
}

func jsonConf(p *conf.PartialConfiguration) *conf.PartialJSONConfiguration {
	if p.JSON == nil {
		p.JSON = &conf.PartialJSONConfiguration{}
	}
	return p.JSON
}

func jsonFormatter(p *conf.PartialConfiguration) *conf.PartialJSONFormatter {
	j := jsonConf(p)
	if j.Formatter == nil {
		j.Formatter = &conf.PartialJSONFormatter{}
	}
	return j.Formatter
}

func jsonParser(p *conf.PartialConfiguration) *conf.PartialJSONParser {
	j := jsonConf(p)
	if j.Parser == nil {
		j.Parser = &conf.PartialJSONParser{}
	}
	return j.Parser
}

func css(p *conf.PartialConfiguration) *conf.PartialCSSConfiguration {
	if p.CSS == nil {
		p.CSS = &conf.PartialCSSConfiguration{}
	}
	return p.CSS
}

func cssFormatter(p *conf.PartialConfiguration) *conf.PartialCSSFormatter {
	c := css(p)
	if c.Formatter == nil {
		c.Formatter = &conf.PartialCSSFormatter{}
	}
	return c.Formatter
}

func cssParser(p *conf.PartialConfiguration) *conf.PartialCSSParser {
	c := css(p)
	if c.Parser == nil {
		c.Parser = &conf.PartialCSSParser{}
	}
	return c.Parser
}
