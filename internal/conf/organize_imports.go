package conf

// OrganizeImports is the configuration of the import sorting.
type OrganizeImports struct {
	Enabled bool      `json:"enabled"`
	Ignore  StringSet `json:"ignore"`
	Include StringSet `json:"include"`
}

// PartialOrganizeImports is the optional form of OrganizeImports.
type PartialOrganizeImports struct {
	Enabled *bool     `json:"enabled,omitempty"`
	Ignore  StringSet `json:"ignore,omitempty"`
	Include StringSet `json:"include,omitempty"`
}

// IsDisabled reports whether import sorting was explicitly turned off.
func (p *PartialOrganizeImports) IsDisabled() bool {
	return p != nil && p.Enabled != nil && !*p.Enabled
}

func (p *PartialOrganizeImports) Resolve() OrganizeImports {
	if p == nil {
		p = &PartialOrganizeImports{}
	}
	return OrganizeImports{
		Enabled: orDefault(p.Enabled, true),
		Ignore:  p.Ignore.clone(),
		Include: p.Include.clone(),
	}
}

func (p PartialOrganizeImports) Merge(later PartialOrganizeImports) PartialOrganizeImports {
	return PartialOrganizeImports{
		Enabled: pick(p.Enabled, later.Enabled),
		Ignore:  pickSet(p.Ignore, later.Ignore),
		Include: pickSet(p.Include, later.Include),
	}
}
