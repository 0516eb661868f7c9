package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// DefaultDataFile is the fixed name of the JSON collection document.
const DefaultDataFile = "flashcards.json"

// Config holds application configuration.
type Config struct {
	// Storage selects the persistence backend: "json" (default) or "sqlite".
	Storage string `json:"storage,omitempty"`

	// SubjectChoices are the subjects offered on the create form.
	// The last choice, if it is "Other", lets the user type a custom subject.
	SubjectChoices []string `json:"subject_choices,omitempty"`

	// Bind is the address the web UI listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the port the web UI listens on.
	Port int `json:"port,omitempty"`

	// AllowedPaths are extra absolute directories that export and import may use,
	// in addition to the exports directory under the base directory.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths disables the directory restriction for export and import.
	// Symlinks are still rejected.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage:        StorageJSON,
		SubjectChoices: []string{"Math", "Physics", "Chemistry", "Biology", "Other"},
		Bind:           "127.0.0.1",
		Port:           8501,
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (choose %s or %s)", c.Storage, StorageJSON, StorageSQLite)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// DataPath returns the JSON collection document path under baseDir. The
// file name is fixed; only the base directory moves (FLASHDECK_HOME).
func (c *Config) DataPath(baseDir string) string {
	return filepath.Join(baseDir, DefaultDataFile)
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.flashdeck.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.flashdeck) and repo (.flashdeck) directories.
// Repo config is found by walking upward from startDir to find the nearest .flashdeck/config.json.
// Repo config takes precedence for scalar values; disabled tools are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .flashdeck/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".flashdeck", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars. SubjectChoices are replaced
// wholesale by a non-empty overlay; AllowedPaths and DisabledTools are merged
// and deduplicated. AllowUnsafePaths is sticky once either side sets it.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Storage = firstNonEmpty(strings.TrimSpace(strings.ToLower(overlay.Storage)), base.Storage)
	result.Bind = firstNonEmpty(strings.TrimSpace(overlay.Bind), base.Bind)

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.SubjectChoices = mergeStringSlice(nil, overlay.SubjectChoices)
	if len(result.SubjectChoices) == 0 {
		result.SubjectChoices = mergeStringSlice(nil, base.SubjectChoices)
	}

	result.AllowedPaths = mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths)
	result.AllowUnsafePaths = base.AllowUnsafePaths || overlay.AllowUnsafePaths
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
