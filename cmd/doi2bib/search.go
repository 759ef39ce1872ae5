package main

import (
	"fmt"
	"strings"

	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/search"
	"github.com/spf13/cobra"
)

const defaultSearchLimit = 10

var (
	searchLimit int
	searchMerge bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", defaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().BoolVar(&searchMerge, "merge", false, "Query all sources in parallel and merge results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search papers by title",
	Long: `Search papers by title across the configured sources (OpenAlex,
Crossref, Semantic Scholar) and print their identifiers, so a result can
be passed back to doi2bib for resolution.

By default sources are tried in order and the first one with results
wins; with --merge all sources are queried in parallel and the results
interleaved.

Examples:
  doi2bib search "auto-encoding variational bayes"
  doi2bib search --merge --limit 5 "attention is all you need"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if searchMerge {
		cfg.MergeSearchResults = true
	}

	results, err := search.NewSearcher(cfg).Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if len(results) == 0 {
		fmt.Println("No papers found")
		return nil
	}

	for i, r := range results {
		printResult(i+1, r)
	}
	return nil
}

func printResult(n int, r search.Result) {
	fmt.Printf("%d. %s\n", n, r.Title)
	if authors := formatAuthors(r.Authors); authors != "" {
		fmt.Printf("   %s\n", authors)
	}

	var details []string
	if r.Journal != "" {
		details = append(details, r.Journal)
	}
	if r.Year != "" {
		details = append(details, r.Year)
	}
	if len(details) > 0 {
		fmt.Printf("   %s\n", strings.Join(details, ", "))
	}
	if r.DOI != "" {
		fmt.Printf("   %s  [%s]\n", r.DOI, r.Source)
	}
	fmt.Println()
}

// formatAuthors renders up to three author names, eliding the rest.
func formatAuthors(authors []search.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 3 {
		names = append(names[:3], "et al.")
	}
	return strings.Join(names, ", ")
}
