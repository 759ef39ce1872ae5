// Package config handles the doi2bib configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the per-user configuration directory under $HOME.
	ConfigDir = ".doi2bib"

	// ConfigFile is the configuration file name inside ConfigDir.
	ConfigFile = "config.yaml"

	// ADSTokenFile optionally holds the ADS API token inside ConfigDir.
	ADSTokenFile = "ads_token"

	// CacheFile is the SQLite resolution cache inside ConfigDir.
	CacheFile = "cache.db"
)

// Config is the process-wide configuration, read-only after load. Every
// field normalization transform is individually toggleable.
type Config struct {
	// Modules lists the active modules in registration order. Order
	// matters: classifiers are tried in this order, first match wins.
	Modules []string `yaml:"modules"`

	// Transform toggles.
	ConvertLatexChars      bool `yaml:"convert_latex_chars"`
	FixArxivEntrytype      bool `yaml:"fix_arxiv_entrytype"`
	AbbreviateJournalNames bool `yaml:"abbreviate_journal_names"`
	GenerateCitekey        bool `yaml:"generate_citekey"`
	FormatAuthorNames      bool `yaml:"format_author_names"`
	ConvertMonthToNumber   bool `yaml:"convert_month_to_number"`
	ResolveADSURL          bool `yaml:"resolve_adsurl"`
	RemoveURLIfDOI         bool `yaml:"remove_url_if_doi"`
	CrossmatchWithDBLP     bool `yaml:"crossmatch_with_dblp"`

	// UpdateArxivIfDOI re-resolves an arXiv preprint through its DOI when
	// the preprint record carries one, preferring the published metadata.
	UpdateArxivIfDOI bool `yaml:"update_arxiv_if_doi"`

	// LimitAuthors is the maximum number of authors kept in the author
	// field; longer lists are truncated with "and others".
	LimitAuthors int `yaml:"limit_authors"`

	// RemoveFields maps an entry type (or "all") to the fields removed
	// from entries of that type.
	RemoveFields map[string][]string `yaml:"remove_fields"`

	// JournalAbbreviations extends (and overrides) the built-in journal
	// abbreviation table.
	JournalAbbreviations map[string]string `yaml:"journal_abbreviations"`

	// Title search settings.
	SearchSources      []string `yaml:"search_sources"`
	MergeSearchResults bool     `yaml:"merge_search_results"`

	// API credentials. Environment variables take precedence (see cmd).
	OpenAlexEmail         string `yaml:"openalex_email"`
	SemanticScholarAPIKey string `yaml:"semantic_scholar_api_key"`
	ADSToken              string `yaml:"ads_token"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Modules:                []string{"doi", "arxiv", "isbn", "ads", "dblp"},
		ConvertLatexChars:      true,
		FixArxivEntrytype:      true,
		AbbreviateJournalNames: true,
		GenerateCitekey:        true,
		FormatAuthorNames:      true,
		ConvertMonthToNumber:   true,
		ResolveADSURL:          false,
		RemoveURLIfDOI:         true,
		CrossmatchWithDBLP:     false,
		UpdateArxivIfDOI:       true,
		LimitAuthors:           10,
		RemoveFields: map[string][]string{
			"all": {"abstract"},
		},
		JournalAbbreviations: map[string]string{},
		SearchSources:      []string{"openalex", "crossref", "semanticscholar"},
		MergeSearchResults: false,
	}
}

// IncludeAbstract reports whether abstracts should be fetched and kept.
// Fetching is skipped entirely when the global removal list would delete
// the field anyway.
func (c *Config) IncludeAbstract() bool {
	for _, field := range c.RemoveFields["all"] {
		if field == "abstract" {
			return false
		}
	}
	return true
}

// Path returns the config file path under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

// CachePath returns the resolution cache path under the user's home
// directory.
func CachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ConfigDir, CacheFile), nil
}

// Load reads a configuration file, applying defaults for any key the file
// omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Modules) == 0 {
		return nil, fmt.Errorf("%s: modules list must not be empty", path)
	}
	return cfg, nil
}

// LoadDefault loads the user's config file if present, or returns the
// defaults if it does not exist.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the given path, creating the directory
// if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory. The path is
// returned unchanged if it has no ~ prefix or the home directory is
// unavailable.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
