// Package main provides the doi2bib CLI entry point.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/cache"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/bibkit/doi2bib/internal/modules"
	"github.com/bibkit/doi2bib/internal/resolve"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// noCache disables the local resolution cache for this invocation
var noCache bool

// maxCacheAge bounds how long a cached resolution is reused. Upstream
// metadata does change (preprints get published), just slowly.
const maxCacheAge = 30 * 24 * time.Hour

func main() {
	// Credentials may live in a .env file next to the working directory.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doi2bib <identifier> [<identifier>...]",
	Short: "Resolve DOIs, arXiv IDs, ISBNs, and ADS bibcodes to BibTeX",
	Long: `doi2bib resolves bibliographic identifiers to normalized BibTeX entries.

It recognizes DOIs, arXiv IDs, ISBN-10/13 numbers, and ADS bibcodes,
fetches the entry from the matching API, and normalizes the result:
LaTeX escapes, journal abbreviations, a Lastname_Year_keyword citekey,
author name formatting, and more. Every transform can be toggled in
~/.doi2bib/config.yaml.

Examples:
  doi2bib 10.1038/nature14539
  doi2bib arXiv:1312.6114
  doi2bib 978-0-262-01802-9
  doi2bib 2015Natur.521..436L`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runResolve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Skip the local resolution cache")
	rootCmd.Version = Version

	// Modules may extend the CLI surface before any configuration exists.
	for _, d := range modules.Descriptors() {
		d.AddCLIArgs(rootCmd.PersistentFlags())
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	pipeline, err := resolve.New(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "loading modules: %v", err)
	}

	// A module may claim the whole invocation.
	if handled, err := pipeline.Registry().RunCLIExec(args); handled {
		return err
	}

	store := openCache()
	if store != nil {
		defer store.Close()
	}

	failed := false
	for _, raw := range args {
		entry, ok := cachedEntry(store, raw)
		if !ok {
			entry, ok = resolveAndCache(cmd, pipeline, store, raw)
		}
		if !ok {
			failed = true
		}
		fmt.Println(entry)
	}

	if failed {
		return fmt.Errorf("one or more identifiers failed to resolve")
	}
	return nil
}

// openCache opens the resolution cache, or returns nil when caching is
// disabled or unavailable. Resolution works without it.
func openCache() *cache.Cache {
	if noCache {
		return nil
	}
	path, err := config.CachePath()
	if err != nil {
		return nil
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil
	}
	return store
}

func cachedEntry(store *cache.Cache, raw string) (string, bool) {
	if store == nil {
		return "", false
	}
	entry, ok, err := store.Get(identify.Preprocess(raw))
	if err != nil || !ok {
		return "", false
	}
	if time.Since(entry.ResolvedAt) > maxCacheAge {
		return "", false
	}
	return entry.BibTeX, true
}

// resolveAndCache resolves one identifier. On failure it returns the
// indented error message the same way a successful entry is returned, so
// batch output stays aligned with its inputs.
func resolveAndCache(cmd *cobra.Command, pipeline *resolve.Pipeline, store *cache.Cache, raw string) (string, bool) {
	rec, err := pipeline.Resolve(cmd.Context(), raw)
	if err != nil {
		return "\n  There was an error:\n  " + err.Error() + "\n", false
	}

	entry := strings.TrimSpace(bibtex.Format(rec))
	if store != nil {
		id := identify.Preprocess(raw)
		kind, _ := pipeline.Registry().IdentifyKind(id)
		_ = store.Put(cache.Entry{Identifier: id, Kind: kind, BibTeX: entry})
	}
	return entry, true
}
