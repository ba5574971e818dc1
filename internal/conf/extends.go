package conf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/juliosouzam/biome/internal/pkgresolve"
)

// PackageResolver resolves a package-style specifier ("pkg/export") to a file,
// searching from baseDir and preferring the export conditions in order.
type PackageResolver interface {
	Resolve(specifier, baseDir string, conditions []string) (string, error)
}

// Fragment is one resolved extends entry. Partial already contains the
// entry's own extends chain merged underneath its fields.
type Fragment struct {
	Path    string
	Partial PartialConfiguration
}

// ExtendsResolver turns extends specifiers into configuration fragments.
type ExtendsResolver struct {
	Packages   PackageResolver
	Conditions []string
	Logger     *slog.Logger
}

// NewExtendsResolver returns a resolver looking packages up in node_modules
// with the default export conditions.
func NewExtendsResolver() *ExtendsResolver {
	return &ExtendsResolver{
		Packages:   pkgresolve.New(),
		Conditions: pkgresolve.DefaultConditions,
	}
}

type extendsFrame struct {
	// path is the canonical path of the file whose extends are being
	// resolved; empty for a bare list of specifiers.
	path       string
	base       string
	own        PartialConfiguration
	specifiers []string
	next       int
	fragments  []Fragment
}

// Resolve resolves specifiers relative to basePath and returns one fragment
// per specifier, in the order they are listed.
func (r *ExtendsResolver) Resolve(specifiers []string, basePath string) ([]Fragment, error) {
	return r.resolve(&extendsFrame{base: basePath, specifiers: specifiers})
}

// ResolvePayload resolves the extends of a loaded configuration file. The
// file itself takes part in cycle detection.
func (r *ExtendsResolver) ResolvePayload(payload ConfigurationPayload) ([]Fragment, error) {
	return r.resolve(&extendsFrame{
		path:       canonicalPath(payload.ConfigurationFilePath),
		base:       payload.ExternalResolutionBasePath,
		own:        payload.Partial,
		specifiers: payload.Partial.Extends,
	})
}

// resolve walks the extends graph depth first with an explicit stack. A file
// is flattened once all of its own extends are, so its fragment is
// merge(own extends..., own fields). Flattened files are memoised by
// canonical path; a file met again while still on the stack is a cycle.
func (r *ExtendsResolver) resolve(root *extendsFrame) ([]Fragment, error) {
	logger := r.logger()
	stack := []*extendsFrame{root}
	onStack := map[string]bool{}
	if root.path != "" {
		onStack[root.path] = true
	}
	done := map[string]PartialConfiguration{}

	for {
		top := stack[len(stack)-1]
		if top.next < len(top.specifiers) {
			specifier := top.specifiers[top.next]
			top.next++

			file, err := r.locate(specifier, top.base, top.path)
			if err != nil {
				return nil, err
			}
			if flat, ok := done[file]; ok {
				top.fragments = append(top.fragments, Fragment{Path: file, Partial: flat})
				continue
			}
			if onStack[file] {
				return nil, cycleDiagnostic(stack, file)
			}

			payload, err := loadExtended(file, top.path)
			if err != nil {
				return nil, err
			}
			logger.Debug("resolved extended configuration", "specifier", specifier, "path", file)
			onStack[file] = true
			stack = append(stack, &extendsFrame{
				path:       file,
				base:       payload.ExternalResolutionBasePath,
				own:        payload.Partial,
				specifiers: payload.Partial.Extends,
			})
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return top.fragments, nil
		}
		parts := make([]PartialConfiguration, 0, len(top.fragments)+1)
		for _, f := range top.fragments {
			parts = append(parts, f.Partial)
		}
		flat := Merge(append(parts, top.own)...)
		done[top.path] = flat
		delete(onStack, top.path)

		parent := stack[len(stack)-1]
		parent.fragments = append(parent.fragments, Fragment{Path: top.path, Partial: flat})
	}
}

// locate maps a specifier to the canonical path of a configuration file.
// Specifiers starting with "." or ending in .json/.jsonc are file paths
// relative to base; anything else is a package reference.
func (r *ExtendsResolver) locate(specifier, base, from string) (string, error) {
	if isPathSpecifier(specifier) {
		file := specifier
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, filepath.FromSlash(file))
		}
		if _, err := os.Stat(file); err != nil {
			return "", &Diagnostic{
				Kind:      ErrExtendsNotFound,
				Path:      from,
				Specifier: specifier,
				Searched:  []string{file},
				Err:       err,
			}
		}
		return canonicalPath(file), nil
	}

	if r.Packages == nil {
		return "", &Diagnostic{
			Kind:      ErrExtendsNotFound,
			Path:      from,
			Specifier: specifier,
			Err:       errors.New("package resolution is not available"),
		}
	}
	file, err := r.Packages.Resolve(specifier, base, r.Conditions)
	if err != nil {
		d := &Diagnostic{Kind: ErrExtendsNotFound, Path: from, Specifier: specifier, Err: err}
		var nf *pkgresolve.NotFoundError
		if errors.As(err, &nf) {
			d.Searched = nf.Searched
		}
		return "", d
	}
	return canonicalPath(file), nil
}

func isPathSpecifier(specifier string) bool {
	if filepath.IsAbs(specifier) || strings.HasPrefix(specifier, ".") {
		return true
	}
	ext := filepath.Ext(specifier)
	return ext == ".json" || ext == ".jsonc"
}

// loadExtended reads and parses an extended file. Its own extends resolve
// relative to the directory it was found in.
func loadExtended(file, from string) (ConfigurationPayload, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return ConfigurationPayload{}, &Diagnostic{
			Kind:     ErrExtendsNotFound,
			Path:     from,
			Searched: []string{file},
			Err:      err,
		}
	}
	partial, err := ParseConfiguration(data, file)
	if err != nil {
		return ConfigurationPayload{}, err
	}
	return ConfigurationPayload{
		Partial:                    partial,
		ConfigurationFilePath:      file,
		ExternalResolutionBasePath: filepath.Dir(file),
	}, nil
}

func cycleDiagnostic(stack []*extendsFrame, file string) error {
	var chain []string
	for _, frame := range stack {
		if frame.path == file || len(chain) > 0 {
			chain = append(chain, frame.path)
		}
	}
	chain = append(chain, file)
	return &Diagnostic{
		Kind:  ErrExtendsCycle,
		Path:  chain[0],
		Chain: chain,
		Err:   fmt.Errorf("%d files involved", len(chain)-1),
	}
}

func (r *ExtendsResolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// canonicalPath makes path absolute and resolves symlinks when possible, so
// that one file reached through different routes has one identity.
func canonicalPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
