package main

import (
	"fmt"
	"strings"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/pdf"
	"github.com/bibkit/doi2bib/internal/resolve"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Resolve a PDF to BibTeX via its embedded DOI or arXiv ID",
	Long: `Scan the first pages of a PDF for a DOI or an arXiv ID and resolve
it to a BibTeX entry.

Example:
  doi2bib pdf paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(args[0])

	identifier, err := pdf.ExtractIdentifier(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	if identifier == "" {
		if title, err := pdf.ExtractTitle(path); err == nil && title != "" {
			exitWithError(ExitError,
				"no DOI or arXiv ID found in %s; try: doi2bib search %q", path, title)
		}
		exitWithError(ExitError, "no DOI or arXiv ID found in %s", path)
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	pipeline, err := resolve.New(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "loading modules: %v", err)
	}

	rec, err := pipeline.Resolve(cmd.Context(), identifier)
	if err != nil {
		exitWithError(ExitError, "resolving %q: %v", identifier, err)
	}
	fmt.Println(strings.TrimSpace(bibtex.Format(rec)))
	return nil
}
