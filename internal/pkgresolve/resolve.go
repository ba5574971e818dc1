package pkgresolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultConditions are the export conditions tried, in order, before the
// "default" condition.
var DefaultConditions = []string{"node", "import"}

// ErrNotFound is wrapped by every *NotFoundError.
var ErrNotFound = errors.New("cannot resolve package specifier")

// NotFoundError reports a specifier that could not be resolved together with
// the locations that were probed.
type NotFoundError struct {
	Specifier string
	Searched  []string
	Reason    string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%v %q", ErrNotFound, e.Specifier)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Resolver maps "name/export" and "@scope/name/export" specifiers to files of
// packages installed in node_modules directories, honouring the "exports"
// field of package.json. It is safe for concurrent use; parsed manifests are
// cached for the lifetime of the Resolver.
type Resolver struct {
	// Extensions are appended to the export path of packages without an
	// "exports" field when the path has no extension of its own.
	Extensions []string

	mu        sync.Mutex
	manifests map[string]*manifest
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExtensions replaces the extensions tried for packages without exports.
func WithExtensions(exts ...string) Option {
	return func(r *Resolver) {
		r.Extensions = exts
	}
}

// New returns a Resolver trying the .json and .jsonc extensions unless
// opts say otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		Extensions: []string{".json", ".jsonc"},
		manifests:  make(map[string]*manifest),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type manifest struct {
	Name    string          `json:"name"`
	Exports json.RawMessage `json:"exports"`
}

// Resolve looks up specifier from baseDir upwards and returns the absolute
// path of the file it designates. conditions are tried in order, followed by
// "default"; nil means DefaultConditions.
func (r *Resolver) Resolve(specifier, baseDir string, conditions []string) (string, error) {
	name, subpath, err := splitSpecifier(specifier)
	if err != nil {
		return "", &NotFoundError{Specifier: specifier, Reason: err.Error()}
	}
	if conditions == nil {
		conditions = DefaultConditions
	}

	dir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	var searched []string
	for {
		pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
		searched = append(searched, pkgDir)

		m, err := r.manifest(filepath.Join(pkgDir, "package.json"))
		switch {
		case err == nil:
			resolved, reason := r.resolveInPackage(pkgDir, m, subpath, conditions)
			if reason != "" {
				return "", &NotFoundError{Specifier: specifier, Searched: searched, Reason: reason}
			}
			return resolved, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("read manifest of %s: %w", name, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Specifier: specifier, Searched: searched}
		}
		dir = parent
	}
}

func (r *Resolver) manifest(file string) (*manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.manifests[file]; ok {
		return m, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m := &manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if r.manifests == nil {
		r.manifests = make(map[string]*manifest)
	}
	r.manifests[file] = m
	return m, nil
}

// resolveInPackage returns the resolved file, or a non-empty reason why the
// subpath cannot be served by the package.
func (r *Resolver) resolveInPackage(pkgDir string, m *manifest, subpath string, conditions []string) (string, string) {
	var target string
	if len(m.Exports) > 0 && string(m.Exports) != "null" {
		var exports any
		if err := json.Unmarshal(m.Exports, &exports); err != nil {
			return "", fmt.Sprintf("invalid exports: %v", err)
		}
		t, ok := matchExports(exports, subpath, conditions)
		if !ok {
			return "", fmt.Sprintf("%q is not exported by %s", subpath, pkgDir)
		}
		target = t
	} else {
		if subpath == "." {
			return "", fmt.Sprintf("%s has no exports", pkgDir)
		}
		target = subpath
	}

	file := filepath.Join(pkgDir, filepath.FromSlash(target))
	if rel, err := filepath.Rel(pkgDir, file); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Sprintf("%q points outside of %s", target, pkgDir)
	}
	if isFile(file) {
		return file, ""
	}
	if path.Ext(target) == "" {
		for _, ext := range r.Extensions {
			if isFile(file + ext) {
				return file + ext, ""
			}
		}
	}
	return "", fmt.Sprintf("%s does not exist", file)
}

// matchExports resolves subpath through an "exports" value. A string or an
// array stands for the "." entry; an object is either a subpath map (keys
// starting with ".") or a conditions map for ".".
func matchExports(exports any, subpath string, conditions []string) (string, bool) {
	obj, isObj := exports.(map[string]any)
	if !isObj || !isSubpathMap(obj) {
		if subpath != "." {
			return "", false
		}
		return resolveTarget(exports, conditions, "")
	}

	if target, ok := obj[subpath]; ok {
		return resolveTarget(target, conditions, "")
	}

	// Subpath patterns: the entry with the longest prefix before "*" wins.
	bestKey, bestMatch := "", ""
	for key := range obj {
		star := strings.IndexByte(key, '*')
		if star < 0 || strings.LastIndexByte(key, '*') != star {
			continue
		}
		prefix, suffix := key[:star], key[star+1:]
		if !strings.HasPrefix(subpath, prefix) || !strings.HasSuffix(subpath, suffix) || len(subpath) < len(prefix)+len(suffix) {
			continue
		}
		if len(prefix) > strings.IndexByte(bestKey, '*') {
			bestKey = key
			bestMatch = subpath[len(prefix) : len(subpath)-len(suffix)]
		}
	}
	if bestKey == "" {
		return "", false
	}
	return resolveTarget(obj[bestKey], conditions, bestMatch)
}

func isSubpathMap(obj map[string]any) bool {
	for key := range obj {
		return strings.HasPrefix(key, ".")
	}
	return false
}

func resolveTarget(target any, conditions []string, star string) (string, bool) {
	switch t := target.(type) {
	case string:
		if !strings.HasPrefix(t, "./") {
			return "", false
		}
		return strings.ReplaceAll(t, "*", star), true
	case []any:
		for _, alt := range t {
			if resolved, ok := resolveTarget(alt, conditions, star); ok {
				return resolved, true
			}
		}
	case map[string]any:
		for _, cond := range append(append([]string{}, conditions...), "default") {
			if next, ok := t[cond]; ok {
				if resolved, ok := resolveTarget(next, conditions, star); ok {
					return resolved, true
				}
			}
		}
	}
	return "", false
}

// splitSpecifier separates the package name from the export subpath, which
// is returned in exports-map form ("." or "./sub/path").
func splitSpecifier(specifier string) (string, string, error) {
	parts := strings.Split(specifier, "/")
	n := 1
	if strings.HasPrefix(specifier, "@") {
		n = 2
	}
	if len(parts) < n {
		return "", "", errors.New("scoped package name needs a scope and a name")
	}
	for _, p := range parts[:n] {
		if p == "" || p == "@" || strings.HasPrefix(p, ".") {
			return "", "", fmt.Errorf("invalid package name %q", strings.Join(parts[:n], "/"))
		}
	}
	name := strings.Join(parts[:n], "/")
	if len(parts) == n {
		return name, ".", nil
	}
	return name, "./" + strings.Join(parts[n:], "/"), nil
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
