package conf

import (
	"errors"
	"strings"

	"github.com/juliosouzam/biome/internal/l10n"
)

// Error categories of this package. A *Diagnostic wraps exactly one of them,
// so callers can classify failures with errors.Is.
//   - ErrConfigNotFound: no configuration file where the user said there is one.
//   - ErrConfigUnreadable: a configuration file exists but cannot be read.
//   - ErrParse: the document is not valid JSON/JSONC.
//   - ErrSchema: unknown field, wrong value type or out-of-range value.
//   - ErrExtendsNotFound: an extends specifier could not be resolved.
//   - ErrExtendsCycle: the extends chain loops back onto itself.
//   - ErrInvalidPattern: a malformed glob pattern.
var (
	ErrConfigNotFound   = errors.New("configuration file not found")
	ErrConfigUnreadable = errors.New("cannot read configuration file")
	ErrParse            = errors.New("malformed configuration")
	ErrSchema           = errors.New("invalid configuration")
	ErrExtendsNotFound  = errors.New("cannot resolve extended configuration")
	ErrExtendsCycle     = errors.New("extends cycle detected")
	ErrInvalidPattern   = errors.New("invalid glob pattern")
)

// Diagnostic describes why a configuration could not be loaded.
type Diagnostic struct {
	// Kind is one of the Err* categories above.
	Kind error
	// Path is the file the problem was found in, if any.
	Path string
	// Field is the dotted location of the offending value, if known.
	Field string
	// Specifier is the extends entry that failed to resolve.
	Specifier string
	// Chain lists the files of an extends cycle, ending with the repeated one.
	Chain []string
	// Searched lists the locations probed for a file or specifier.
	Searched []string
	// Err is the underlying cause.
	Err error
}

func (d *Diagnostic) Error() string {
	parts := make([]string, 0, 4)
	if d.Path != "" {
		parts = append(parts, d.Path)
	}
	if d.Field != "" {
		parts = append(parts, d.Field)
	}
	parts = append(parts, l10n.T(d.Kind.Error()))
	if d.Specifier != "" {
		parts = append(parts, l10n.T("specifier %q", d.Specifier))
	}
	if len(d.Chain) > 0 {
		parts = append(parts, strings.Join(d.Chain, " -> "))
	}
	if len(d.Searched) > 0 {
		parts = append(parts, l10n.TN("searched %d location (%s)", "searched %d locations (%s)",
			uint32(len(d.Searched)), len(d.Searched), strings.Join(d.Searched, ", ")))
	}
	if d.Err != nil {
		parts = append(parts, d.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the category and, when present, the cause.
func (d *Diagnostic) Unwrap() []error {
	if d.Err == nil {
		return []error{d.Kind}
	}
	return []error{d.Kind, d.Err}
}
