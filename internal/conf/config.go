package conf

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// defaultConfig contains the embedded default configuration. It is the base
// layer every load starts from. It sets no language-specific layout option,
// so languages keep inheriting from the top-level formatter.
//
//go:embed defaults.json
var defaultConfig string

var defaultPartial = sync.OnceValues(func() (PartialConfiguration, error) {
	return ParseConfiguration([]byte(defaultConfig), "defaults.json")
})

// ConfigFileNames are the names looked for in a directory, in order.
var ConfigFileNames = []string{"biome.json", "biome.jsonc"}

// PathHint tells the loader where the configuration file is expected. It is
// one of NoHint, LSPHint or UserHint.
type PathHint interface {
	isPathHint()
}

// NoHint searches the working directory and its parents. A missing file is
// not an error.
type NoHint struct{}

// LSPHint searches the directory supplied by an editor and its parents. A
// missing file is not an error.
type LSPHint struct {
	Dir string
}

// UserHint is a file or directory given by the user. A missing, unreadable
// or malformed file is an error.
type UserHint struct {
	Path string
}

func (NoHint) isPathHint()   {}
func (LSPHint) isPathHint()  {}
func (UserHint) isPathHint() {}

// ConfigurationPayload is a configuration file that was found and parsed.
type ConfigurationPayload struct {
	Partial PartialConfiguration
	// ConfigurationFilePath is the path of the file, file name included.
	ConfigurationFilePath string
	// ExternalResolutionBasePath is where the extends of this file resolve
	// from.
	ExternalResolutionBasePath string
}

// Loaded is the outcome of a successful load.
type Loaded struct {
	Configuration Configuration
	// Partial is the merged configuration before defaults were filled in.
	// Overrides are applied on top of it per file.
	Partial PartialConfiguration
	// FilePath is the configuration file that was used, empty when running
	// on defaults.
	FilePath string
	// Directory is the directory override patterns are relative to.
	Directory string
}

// ForFile returns the configuration in effect for one analyzed file, with
// every matching override applied. A relative filePath is taken as relative
// to Directory; an absolute one outside Directory is matched as given.
func (l Loaded) ForFile(filePath string) (Configuration, error) {
	rel := filePath
	if filepath.IsAbs(filePath) && l.Directory != "" {
		if r, err := filepath.Rel(l.Directory, filePath); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
		}
	}
	partial, err := l.Partial.Overrides.Apply(rel, l.Partial)
	if err != nil {
		return Configuration{}, err
	}
	return partial.Resolve(), nil
}

// ConfigSource orchestrates loading configuration from multiple sources.
// See the Read method.
type ConfigSource struct {
	// Hint defaults to NoHint.
	Hint PathHint
	// WorkingDir defaults to the process working directory.
	WorkingDir string
	// CLI holds the values given on the command line, if any.
	CLI *PartialConfiguration
	// Extends defaults to NewExtendsResolver().
	Extends *ExtendsResolver
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Read loads and returns the complete configuration by merging all layers:
// 1. Embedded defaults
// 2. The extends chain of the configuration file
// 3. The configuration file
// 4. Command line values
//
// On failure no configuration is returned.
func (cs *ConfigSource) Read() (Loaded, error) {
	logger := cs.logger()

	defaults, err := defaultPartial()
	if err != nil {
		logger.Error("failed to parse embedded defaults", "error", err)
		return Loaded{}, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	fragments := []PartialConfiguration{defaults}

	payload, dir, err := cs.Find()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return Loaded{}, err
	}

	loaded := Loaded{Directory: dir}
	if payload != nil {
		extended, err := cs.extends().ResolvePayload(*payload)
		if err != nil {
			logger.Error("failed to resolve extended configuration", "error", err, "path", payload.ConfigurationFilePath)
			return Loaded{}, err
		}
		for _, fragment := range extended {
			fragments = append(fragments, fragment.Partial)
		}
		fragments = append(fragments, payload.Partial)
		loaded.FilePath = payload.ConfigurationFilePath
		loaded.Directory = filepath.Dir(payload.ConfigurationFilePath)
		logger.Debug("loaded configuration", "path", loaded.FilePath, "extends", len(extended))
	}

	if cs.CLI != nil {
		if err := cs.CLI.Validate(); err != nil {
			return Loaded{}, err
		}
		fragments = append(fragments, *cs.CLI)
	}

	loaded.Partial = Merge(fragments...)
	loaded.Configuration = loaded.Partial.Resolve()
	return loaded, nil
}

// Find locates and parses the configuration file designated by the hint. It
// returns a nil payload when no file exists and the hint tolerates that,
// together with the directory the search started from.
func (cs *ConfigSource) Find() (*ConfigurationPayload, string, error) {
	switch hint := cs.Hint.(type) {
	case nil, NoHint:
		dir, err := cs.workingDir()
		if err != nil {
			return nil, "", err
		}
		payload, err := searchUpwards(dir)
		return payload, dir, err
	case LSPHint:
		payload, err := searchUpwards(hint.Dir)
		return payload, hint.Dir, err
	case UserHint:
		payload, err := loadFromUser(hint.Path)
		if err != nil {
			return nil, "", err
		}
		return payload, filepath.Dir(payload.ConfigurationFilePath), nil
	default:
		return nil, "", fmt.Errorf("unsupported configuration path hint %T", hint)
	}
}

// searchUpwards looks for a configuration file in dir and its parents,
// stopping after the root of a git repository.
func searchUpwards(dir string) (*ConfigurationPayload, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		payload, err := searchDir(dir)
		if err != nil || payload != nil {
			return payload, err
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// searchDir returns the first configuration file of dir, or nil when there
// is none. An existing but unreadable or malformed file is an error.
func searchDir(dir string) (*ConfigurationPayload, error) {
	for _, name := range ConfigFileNames {
		payload, err := loadPayload(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return payload, err
	}
	return nil, nil
}

func loadFromUser(path string) (*ConfigurationPayload, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, notFoundOr(err, path)
	} else if err != nil {
		return nil, &Diagnostic{Kind: ErrConfigUnreadable, Path: path, Err: err}
	}
	if !info.IsDir() {
		payload, err := loadPayload(path)
		if err != nil {
			return nil, notFoundOr(err, path)
		}
		return payload, nil
	}

	payload, err := searchDir(path)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		searched := make([]string, len(ConfigFileNames))
		for i, name := range ConfigFileNames {
			searched[i] = filepath.Join(path, name)
		}
		return nil, &Diagnostic{Kind: ErrConfigNotFound, Searched: searched}
	}
	return payload, nil
}

// loadPayload reads and parses one file. Read errors are returned unwrapped
// so that callers can test for os.ErrNotExist.
func loadPayload(path string) (*ConfigurationPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		// Existing but unreadable file should result in failure (let's not
		// hide problems from the users).
		return nil, &Diagnostic{Kind: ErrConfigUnreadable, Path: path, Err: err}
	}
	partial, err := ParseConfiguration(data, path)
	if err != nil {
		return nil, err
	}
	return &ConfigurationPayload{
		Partial:                    partial,
		ConfigurationFilePath:      path,
		ExternalResolutionBasePath: filepath.Dir(path),
	}, nil
}

func notFoundOr(err error, path string) error {
	if errors.Is(err, os.ErrNotExist) {
		return &Diagnostic{Kind: ErrConfigNotFound, Searched: []string{path}, Err: err}
	}
	return err
}

func (cs *ConfigSource) workingDir() (string, error) {
	if cs.WorkingDir != "" {
		return cs.WorkingDir, nil
	}
	return os.Getwd()
}

func (cs *ConfigSource) extends() *ExtendsResolver {
	if cs.Extends != nil {
		return cs.Extends
	}
	r := NewExtendsResolver()
	r.Logger = cs.Logger
	return r
}

func (cs *ConfigSource) logger() *slog.Logger {
	if cs.Logger != nil {
		return cs.Logger
	}
	return slog.Default()
}
