// Package config loads rmselect settings from defaults, YAML files, RMS_*
// environment variables and command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	appErrors "rmselect/internal/errors"
)

const (
	KeyAPIBaseURL = "api.base-url"
	KeyAPITimeout = "api.timeout"

	KeyMaxSelectable  = "selector.max-selectable"
	KeyMaxVisible     = "selector.max-visible"
	KeyScrollDebounce = "selector.scroll-debounce"

	KeyCacheEnabled = "cache.enabled"
	KeyCachePath    = "cache.path"
	KeyCacheTTL     = "cache.ttl"

	KeyOutputFormat = "output.format"
	KeyTheme        = "theme"
)

const (
	// DirName is the per-user and per-project settings directory.
	DirName  = ".rmselect"
	fileName = "config.yaml"

	DefaultMaxSelectable  = 2
	DefaultMaxVisible     = 6
	DefaultScrollDebounce = 200 * time.Millisecond
	DefaultAPITimeout     = 10 * time.Second
	DefaultCacheTTL       = 24 * time.Hour
	DefaultTheme          = "tokyonight"

	envPrefix = "RMS"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize. Tests use it to pin config paths.
type Option func(*initSettings)

// WithWorkingDir sets the directory project config discovery starts from.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig skips discovery and uses path as the project config.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig replaces ~/.rmselect/config.yaml.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

// layer is one YAML file in the precedence chain, lowest first.
type layer struct {
	name string
	path string
	// creatable layers may be written even when the file does not exist yet
	creatable bool
}

type store struct {
	once   sync.Once
	mu     sync.RWMutex
	v      *viper.Viper
	err    error
	layers []layer
}

var state store

var errNotInitialized = appErrors.New(appErrors.CodeConfigurationError, "configuration not initialized", nil)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
// Only the first call does any work.
func Initialize(opts ...Option) error {
	state.once.Do(func() {
		var settings initSettings
		for _, opt := range opts {
			opt(&settings)
		}
		state.err = load(&settings)
	})
	return state.err
}

func load(settings *initSettings) error {
	layers, err := resolveLayers(settings)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	for _, l := range layers {
		if err := mergeLayer(v, l.path); err != nil {
			return appErrors.New(appErrors.CodeConfigurationError, "load "+l.name+" config", err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	state.mu.Lock()
	defer state.mu.Unlock()
	state.v = v
	state.layers = layers
	return nil
}

func resolveLayers(settings *initSettings) ([]layer, error) {
	user := strings.TrimSpace(settings.userConfigPath)
	if user == "" {
		path, err := homePath(fileName)
		if err != nil {
			return nil, err
		}
		user = path
	}

	project := strings.TrimSpace(settings.projectConfigPath)
	if project == "" {
		dir := strings.TrimSpace(settings.workingDir)
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("determine working directory: %w", err)
			}
			dir = wd
		}
		path, err := findProjectConfig(dir)
		if err != nil {
			return nil, err
		}
		project = path
	}

	return []layer{
		{name: "user", path: user, creatable: true},
		{name: "project", path: project},
	}, nil
}

// mergeLayer folds the YAML at path into v. Missing and empty files are skipped.
func mergeLayer(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	//nolint:gosec // G304: reads the user and project config files
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	case len(bytes.TrimSpace(data)) == 0:
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// findProjectConfig walks up from start looking for .rmselect/config.yaml.
func findProjectConfig(start string) (string, error) {
	dir := start
	for {
		candidate := filepath.Join(dir, DirName, fileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.Mode().IsRegular():
			return candidate, nil
		case err == nil:
			return "", fmt.Errorf("%s is not a regular file", candidate)
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func homePath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, name), nil
}

// DefaultCachePath returns ~/.rmselect/cache.db.
func DefaultCachePath() (string, error) {
	return homePath("cache.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, "https://rickandmortyapi.com/api")
	v.SetDefault(KeyAPITimeout, DefaultAPITimeout)
	v.SetDefault(KeyMaxSelectable, DefaultMaxSelectable)
	v.SetDefault(KeyMaxVisible, DefaultMaxVisible)
	v.SetDefault(KeyScrollDebounce, DefaultScrollDebounce)
	v.SetDefault(KeyCacheEnabled, true)
	v.SetDefault(KeyCacheTTL, DefaultCacheTTL)
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyTheme, DefaultTheme)

	// Without a home directory the path stays empty and the cache is skipped.
	cachePath, _ := DefaultCachePath()
	v.SetDefault(KeyCachePath, cachePath)
}

// lookup reads key through get, initializing on demand. Any load error yields
// the zero value.
func lookup[T any](key string, get func(*viper.Viper, string) T) T {
	var zero T
	if err := Initialize(); err != nil {
		return zero
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	if state.v == nil {
		return zero
	}
	return get(state.v, key)
}

// GetString fetches a string value.
func GetString(key string) string { return lookup(key, (*viper.Viper).GetString) }

// GetBool fetches a bool value.
func GetBool(key string) bool { return lookup(key, (*viper.Viper).GetBool) }

// GetInt fetches an integer value.
func GetInt(key string) int { return lookup(key, (*viper.Viper).GetInt) }

// GetDuration fetches a duration value such as "200ms".
func GetDuration(key string) time.Duration { return lookup(key, (*viper.Viper).GetDuration) }

func update(fn func(v *viper.Viper)) error {
	if err := Initialize(); err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.v == nil {
		return errNotInitialized
	}
	fn(state.v)
	return nil
}

// Set updates a key at runtime.
func Set(key string, value any) error {
	return update(func(v *viper.Viper) {
		v.Set(key, value)
	})
}

// ApplyOverrides injects values coming from CLI flags. They beat every other
// source.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	return update(func(v *viper.Viper) {
		for k, val := range overrides {
			v.Set(k, val)
		}
	})
}

// reset clears package state for tests.
func reset() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.v = nil
	state.err = nil
	state.layers = nil
	state.once = sync.Once{}
}

// ResetForTesting clears package state for tests in other packages and loads
// defaults with no config files. The returned function resets again.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, fileName)))
	return reset
}

// SaveTheme persists the theme name. A project config that was loaded is
// updated in place; otherwise the user config is written, creating its
// directory if needed. Project directories are never created.
func SaveTheme(themeName string) error {
	target, err := saveTarget()
	if err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "find config path", err)
	}

	file := viper.New()
	file.SetConfigType("yaml")
	file.SetConfigFile(target)
	_ = file.ReadInConfig() // a missing file starts empty
	file.Set(KeyTheme, themeName)

	//nolint:gosec // G301: config directory uses standard permissions
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "create config directory", err)
	}
	if err := file.WriteConfigAs(target); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "write config", err)
	}
	return Set(KeyTheme, themeName)
}

// saveTarget picks the highest layer that exists, or failing that the highest
// creatable one.
func saveTarget() (string, error) {
	state.mu.RLock()
	layers := state.layers
	state.mu.RUnlock()

	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.path == "" {
			continue
		}
		if _, err := os.Stat(l.path); err == nil {
			return l.path, nil
		}
	}
	for i := len(layers) - 1; i >= 0; i-- {
		if l := layers[i]; l.creatable && l.path != "" {
			return l.path, nil
		}
	}
	return homePath(fileName)
}
