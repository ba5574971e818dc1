package conf

// VcsConfiguration is the configuration of the VCS integration.
type VcsConfiguration struct {
	Enabled       bool          `json:"enabled"`
	ClientKind    VcsClientKind `json:"clientKind"`
	UseIgnoreFile bool          `json:"useIgnoreFile"`
	// Root is the folder where the VCS metadata lives, relative to the
	// configuration file. Empty means the configuration file folder.
	Root          string `json:"root"`
	DefaultBranch string `json:"defaultBranch"`
}

// PartialVcsConfiguration is the optional form of VcsConfiguration.
type PartialVcsConfiguration struct {
	Enabled       *bool          `json:"enabled,omitempty"`
	ClientKind    *VcsClientKind `json:"clientKind,omitempty"`
	UseIgnoreFile *bool          `json:"useIgnoreFile,omitempty"`
	Root          *string        `json:"root,omitempty"`
	DefaultBranch *string        `json:"defaultBranch,omitempty"`
}

// IsDisabled reports whether the integration is off. VCS is opt-in, so an
// unset flag counts as disabled.
func (p *PartialVcsConfiguration) IsDisabled() bool {
	return p == nil || !orDefault(p.Enabled, false)
}

// Resolve fills absent options with defaults.
func (p *PartialVcsConfiguration) Resolve() VcsConfiguration {
	if p == nil {
		p = &PartialVcsConfiguration{}
	}
	return VcsConfiguration{
		Enabled:       orDefault(p.Enabled, false),
		ClientKind:    orDefault(p.ClientKind, VcsClientKindGit),
		UseIgnoreFile: orDefault(p.UseIgnoreFile, false),
		Root:          orDefault(p.Root, ""),
		DefaultBranch: orDefault(p.DefaultBranch, ""),
	}
}

func (p PartialVcsConfiguration) Merge(later PartialVcsConfiguration) PartialVcsConfiguration {
	return PartialVcsConfiguration{
		Enabled:       pick(p.Enabled, later.Enabled),
		ClientKind:    pick(p.ClientKind, later.ClientKind),
		UseIgnoreFile: pick(p.UseIgnoreFile, later.UseIgnoreFile),
		Root:          pick(p.Root, later.Root),
		DefaultBranch: pick(p.DefaultBranch, later.DefaultBranch),
	}
}
