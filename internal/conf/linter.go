package conf

// LinterConfiguration is the configuration of the linter.
type LinterConfiguration struct {
	Enabled bool      `json:"enabled"`
	Rules   Rules     `json:"rules"`
	Ignore  StringSet `json:"ignore"`
	Include StringSet `json:"include"`
}

// PartialLinterConfiguration is the optional form of LinterConfiguration.
type PartialLinterConfiguration struct {
	Enabled *bool     `json:"enabled,omitempty"`
	Rules   *Rules    `json:"rules,omitempty"`
	Ignore  StringSet `json:"ignore,omitempty"`
	Include StringSet `json:"include,omitempty"`
}

// IsDisabled reports whether the linter was explicitly turned off.
func (p *PartialLinterConfiguration) IsDisabled() bool {
	return p != nil && p.Enabled != nil && !*p.Enabled
}

// GetRules returns the configured rules, or the empty (recommended) table.
func (p *PartialLinterConfiguration) GetRules() Rules {
	if p == nil || p.Rules == nil {
		return Rules{}
	}
	return p.Rules.clone()
}

// Resolve fills absent options with defaults.
func (p *PartialLinterConfiguration) Resolve() LinterConfiguration {
	if p == nil {
		p = &PartialLinterConfiguration{}
	}
	return LinterConfiguration{
		Enabled: orDefault(p.Enabled, true),
		Rules:   p.GetRules(),
		Ignore:  p.Ignore.clone(),
		Include: p.Include.clone(),
	}
}

// Merge overlays the options present in later. Rule tables merge rule by
// rule.
func (p PartialLinterConfiguration) Merge(later PartialLinterConfiguration) PartialLinterConfiguration {
	return PartialLinterConfiguration{
		Enabled: pick(p.Enabled, later.Enabled),
		Rules:   mergePtr(p.Rules, later.Rules, Rules.Merge),
		Ignore:  pickSet(p.Ignore, later.Ignore),
		Include: pickSet(p.Include, later.Include),
	}
}
