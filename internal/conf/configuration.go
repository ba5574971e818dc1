package conf

// Configuration is the fully resolved configuration contained in biome.json.
// Every field holds a concrete value.
type Configuration struct {
	Schema          string                  `json:"$schema"`
	Vcs             VcsConfiguration        `json:"vcs"`
	Files           FilesConfiguration      `json:"files"`
	Formatter       FormatterConfiguration  `json:"formatter"`
	OrganizeImports OrganizeImports         `json:"organizeImports"`
	Linter          LinterConfiguration     `json:"linter"`
	Javascript      JavascriptConfiguration `json:"javascript"`
	JSON            JSONConfiguration       `json:"json"`
	CSS             CSSConfiguration        `json:"css"`
	// Extends lists other configuration files this one builds upon.
	Extends StringSet `json:"extends"`
	// Overrides lists granular patterns applied to subsets of files.
	Overrides Overrides `json:"overrides"`
}

// PartialConfiguration mirrors Configuration with every field optional. It is
// what a configuration file or the command line actually supplies; an absent
// field inherits from a lower precedence layer or falls back to its default.
type PartialConfiguration struct {
	Schema          *string                         `json:"$schema,omitempty"`
	Vcs             *PartialVcsConfiguration        `json:"vcs,omitempty"`
	Files           *PartialFilesConfiguration      `json:"files,omitempty"`
	Formatter       *PartialFormatterConfiguration  `json:"formatter,omitempty"`
	OrganizeImports *PartialOrganizeImports         `json:"organizeImports,omitempty"`
	Linter          *PartialLinterConfiguration     `json:"linter,omitempty"`
	Javascript      *PartialJavascriptConfiguration `json:"javascript,omitempty"`
	JSON            *PartialJSONConfiguration       `json:"json,omitempty"`
	CSS             *PartialCSSConfiguration        `json:"css,omitempty"`
	Extends         StringSet                       `json:"extends,omitempty"`
	Overrides       Overrides                       `json:"overrides,omitempty"`
}

// Init returns the configuration written when bootstrapping a new project.
func Init() PartialConfiguration {
	return PartialConfiguration{
		OrganizeImports: &PartialOrganizeImports{
			Enabled: ptr(true),
		},
		Linter: &PartialLinterConfiguration{
			Enabled: ptr(true),
			Rules: &Rules{
				Recommended: ptr(true),
			},
		},
	}
}

// Resolve replaces every absent field with its default.
func (p PartialConfiguration) Resolve() Configuration {
	formatter := p.Formatter.Resolve()
	var overrides Overrides
	if p.Overrides != nil {
		overrides = append(Overrides{}, p.Overrides...)
	}
	return Configuration{
		Schema:          orDefault(p.Schema, ""),
		Vcs:             p.Vcs.Resolve(),
		Files:           p.Files.Resolve(),
		Formatter:       formatter,
		OrganizeImports: p.OrganizeImports.Resolve(),
		Linter:          p.Linter.Resolve(),
		Javascript:      p.Javascript.Resolve(formatter),
		JSON:            p.JSON.Resolve(formatter),
		CSS:             p.CSS.Resolve(formatter),
		Extends:         p.Extends.clone(),
		Overrides:       overrides,
	}
}

// Merge returns p with later applied on top of it. Neither operand is
// modified.
func (p PartialConfiguration) Merge(later PartialConfiguration) PartialConfiguration {
	overrides := p.Overrides
	if later.Overrides != nil {
		overrides = later.Overrides
	}
	return PartialConfiguration{
		Schema:          pick(p.Schema, later.Schema),
		Vcs:             mergePtr(p.Vcs, later.Vcs, PartialVcsConfiguration.Merge),
		Files:           mergePtr(p.Files, later.Files, PartialFilesConfiguration.Merge),
		Formatter:       mergePtr(p.Formatter, later.Formatter, PartialFormatterConfiguration.Merge),
		OrganizeImports: mergePtr(p.OrganizeImports, later.OrganizeImports, PartialOrganizeImports.Merge),
		Linter:          mergePtr(p.Linter, later.Linter, PartialLinterConfiguration.Merge),
		Javascript:      mergePtr(p.Javascript, later.Javascript, PartialJavascriptConfiguration.Merge),
		JSON:            mergePtr(p.JSON, later.JSON, PartialJSONConfiguration.Merge),
		CSS:             mergePtr(p.CSS, later.CSS, PartialCSSConfiguration.Merge),
		Extends:         pickSet(p.Extends, later.Extends),
		Overrides:       overrides,
	}
}

// IsFormatterDisabled reports whether formatter.enabled is explicitly false.
func (p PartialConfiguration) IsFormatterDisabled() bool {
	return p.Formatter.IsDisabled()
}

// IsLinterDisabled reports whether linter.enabled is explicitly false.
func (p PartialConfiguration) IsLinterDisabled() bool {
	return p.Linter.IsDisabled()
}

// IsOrganizeImportsDisabled reports whether organizeImports.enabled is
// explicitly false.
func (p PartialConfiguration) IsOrganizeImportsDisabled() bool {
	return p.OrganizeImports.IsDisabled()
}

// IsVcsDisabled reports true when the vcs section is absent or not enabled.
func (p PartialConfiguration) IsVcsDisabled() bool {
	return p.Vcs.IsDisabled()
}

// IsVcsEnabled is the negation of IsVcsDisabled.
func (p PartialConfiguration) IsVcsEnabled() bool {
	return !p.IsVcsDisabled()
}

// FormatterConfiguration resolves the top-level formatter section.
func (p PartialConfiguration) FormatterConfiguration() FormatterConfiguration {
	return p.Formatter.Resolve()
}

// JavascriptFormatterConfiguration resolves only the JavaScript section, so
// absent layout options take the hard defaults rather than the top-level
// formatter ones.
func (p PartialConfiguration) JavascriptFormatterConfiguration() JavascriptFormatter {
	var f *PartialJavascriptFormatter
	if p.Javascript != nil {
		f = p.Javascript.Formatter
	}
	return f.Resolve((*PartialFormatterConfiguration)(nil).Resolve().layout())
}

// JSONFormatterConfiguration resolves only the JSON section, like
// JavascriptFormatterConfiguration.
func (p PartialConfiguration) JSONFormatterConfiguration() JSONFormatter {
	var f *PartialJSONFormatter
	if p.JSON != nil {
		f = p.JSON.Formatter
	}
	return f.Resolve((*PartialFormatterConfiguration)(nil).Resolve().layout())
}

// LinterRules returns the rule table, empty when none is configured.
func (p PartialConfiguration) LinterRules() Rules {
	return p.Linter.GetRules()
}
