package conf

// DefaultFileSizeLimit limits the size of analyzed files to 1 MiB.
const DefaultFileSizeLimit uint64 = 1024 * 1024

// FilesConfiguration is the configuration of the filesystem.
type FilesConfiguration struct {
	// MaxSize is the maximum allowed size for source files in bytes. Files
	// above this limit are ignored.
	MaxSize uint64 `json:"maxSize"`
	// Ignore lists Unix shell style patterns of files/folders to skip.
	Ignore StringSet `json:"ignore"`
	// Include lists Unix shell style patterns of the only files/folders to handle.
	Include StringSet `json:"include"`
	// IgnoreUnknown suppresses diagnostics about files of unknown type.
	IgnoreUnknown bool `json:"ignoreUnknown"`
}

// PartialFilesConfiguration is the optional form of FilesConfiguration.
type PartialFilesConfiguration struct {
	MaxSize       *uint64   `json:"maxSize,omitempty"`
	Ignore        StringSet `json:"ignore,omitempty"`
	Include       StringSet `json:"include,omitempty"`
	IgnoreUnknown *bool     `json:"ignoreUnknown,omitempty"`
}

// Resolve fills absent options with defaults.
func (p *PartialFilesConfiguration) Resolve() FilesConfiguration {
	if p == nil {
		p = &PartialFilesConfiguration{}
	}
	return FilesConfiguration{
		MaxSize:       orDefault(p.MaxSize, DefaultFileSizeLimit),
		Ignore:        p.Ignore.clone(),
		Include:       p.Include.clone(),
		IgnoreUnknown: orDefault(p.IgnoreUnknown, false),
	}
}

// Merge overlays the options present in later. Glob sets are replaced,
// not combined.
func (p PartialFilesConfiguration) Merge(later PartialFilesConfiguration) PartialFilesConfiguration {
	return PartialFilesConfiguration{
		MaxSize:       pick(p.MaxSize, later.MaxSize),
		Ignore:        pickSet(p.Ignore, later.Ignore),
		Include:       pickSet(p.Include, later.Include),
		IgnoreUnknown: pick(p.IgnoreUnknown, later.IgnoreUnknown),
	}
}
