// Package settings persists the per-project generation preferences.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/Pr0ny/vue-template-tester/internal/testgen"
)

// DefaultPath is the settings file used when none is given
const DefaultPath = ".vuetest/settings.yaml"

const lockSuffix = ".lock"

var (
	ErrUnknownKey   = errors.New("unknown settings key")
	ErrInvalidValue = errors.New("invalid settings value")
	ErrLocked       = errors.New("settings file is locked by another process")
)

// Settings is the persisted record. Zero values mean "use the engine default".
type Settings struct {
	Imports     string `yaml:"imports"`
	DataTest    string `yaml:"data-test"` // Reserved; not consulted by generation
	Selector    string `yaml:"selector"`
	LocalPath   bool   `yaml:"local-path"`
	RootMarker  string `yaml:"root-marker,omitempty"`
	AliasPrefix string `yaml:"alias-prefix,omitempty"`
	Quote       string `yaml:"quote,omitempty"`
	Scaffold    string `yaml:"scaffold,omitempty"`
	Extension   string `yaml:"ext,omitempty"`
	Distinct    bool   `yaml:"distinct,omitempty"`
}

// Config converts the record into an engine configuration
func (s Settings) Config() testgen.Config {
	return testgen.Config{
		ExtraImports:     s.Imports,
		SelectorTemplate: s.Selector,
		LocalPath:        s.LocalPath,
		DataTest:         s.DataTest,
		RootMarker:       s.RootMarker,
		AliasPrefix:      s.AliasPrefix,
		Quote:            testgen.Quote(s.Quote),
		Scaffold:         testgen.Scaffold(s.Scaffold),
		Extension:        s.Extension,
		Distinct:         s.Distinct,
	}
}

// field describes one settable key
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

func stringField(p func(*Settings) *string, allowed ...string) field {
	return field{
		get: func(s *Settings) string { return *p(s) },
		set: func(s *Settings, v string) error {
			if len(allowed) > 0 && v != "" && !contains(allowed, v) {
				return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidValue, v, strings.Join(allowed, ", "))
			}
			*p(s) = v
			return nil
		},
	}
}

func boolField(p func(*Settings) *bool) field {
	return field{
		get: func(s *Settings) string { return strconv.FormatBool(*p(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*p(s) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"imports":      stringField(func(s *Settings) *string { return &s.Imports }),
	"data-test":    stringField(func(s *Settings) *string { return &s.DataTest }),
	"selector":     stringField(func(s *Settings) *string { return &s.Selector }),
	"local-path":   boolField(func(s *Settings) *bool { return &s.LocalPath }),
	"root-marker":  stringField(func(s *Settings) *string { return &s.RootMarker }),
	"alias-prefix": stringField(func(s *Settings) *string { return &s.AliasPrefix }),
	"quote":        stringField(func(s *Settings) *string { return &s.Quote }, string(testgen.QuoteSingle), string(testgen.QuoteDouble)),
	"scaffold":     stringField(func(s *Settings) *string { return &s.Scaffold }, string(testgen.ScaffoldFull), string(testgen.ScaffoldMinimal)),
	"ext":          stringField(func(s *Settings) *string { return &s.Extension }),
	"distinct":     boolField(func(s *Settings) *bool { return &s.Distinct }),
}

// Keys lists the settable keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of key
func (s *Settings) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(s), nil
}

// Set parses value and assigns it to key
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.set(s, value)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Store reads and writes the settings file at Path
type Store struct {
	Path string
}

// NewStore creates a store for path, or DefaultPath when empty
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads the settings file.
// An absent, empty or corrupt file yields the zero record; corruption is logged.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Cannot read settings, using defaults", "path", s.Path, "error", err)
		}
		return Settings{}
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		slog.Warn("Corrupt settings file, using defaults", "path", s.Path, "error", err)
		return Settings{}
	}

	return settings
}

// Save writes settings under an exclusive file lock.
// It fails with ErrLocked when another writer holds the lock.
func (s *Store) Save(settings Settings) error {
	fileLock, err := s.lock(false)
	if err != nil {
		return err
	}
	defer fileLock.Close()

	return s.write(settings)
}

// Update loads the record, sets key and saves it back.
// The lock is held for the whole sequence and Update waits for it, so concurrent updates of
// different keys are all kept.
func (s *Store) Update(key, value string) (Settings, error) {
	fileLock, err := s.lock(true)
	if err != nil {
		return Settings{}, err
	}
	defer fileLock.Close()

	settings := s.Load()
	if err := settings.Set(key, value); err != nil {
		return settings, err
	}
	if err := s.write(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// lock takes the exclusive lock next to the settings file, blocking when wait is set
func (s *Store) lock(wait bool) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	fileLock := flock.New(s.Path + lockSuffix)
	if wait {
		if err := fileLock.Lock(); err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		return fileLock, nil
	}

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return fileLock, nil
}

// write marshals settings and replaces the file; the caller holds the lock
func (s *Store) write(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := atomicWrite(s.Path, data); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	slog.Debug("Saved settings", "path", s.Path)
	return nil
}

// Reset removes the settings file so defaults apply again
func (s *Store) Reset() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove settings file: %w", err)
	}
	return nil
}

// atomicWrite writes data to a temp file in the same directory and renames it over path
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	tmpFile.Close()

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
