// Package search finds papers by title across multiple bibliographic
// APIs (OpenAlex, Crossref, Semantic Scholar) and unifies their result
// formats.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/crossref"
	"github.com/bibkit/doi2bib/internal/openalex"
	"github.com/bibkit/doi2bib/internal/s2"
)

// Author is a single author of a search result, in given/family form.
type Author struct {
	Given  string
	Family string
}

// Result is a unified search hit. DOI holds the best identifier we could
// find: a DOI when available, else a bare arXiv ID.
type Result struct {
	DOI       string
	Title     string
	Authors   []Author
	Year      string
	Journal   string
	Abstract  string
	Publisher string
	Type      string
	Source    string
}

// Searcher queries the configured title-search backends.
type Searcher struct {
	cfg      *config.Config
	openalex *openalex.Client
	crossref *crossref.Client
	s2       *s2.Client
}

// Option configures a Searcher, mainly to inject clients in tests.
type Option func(*Searcher)

// WithOpenAlexClient sets the OpenAlex client.
func WithOpenAlexClient(c *openalex.Client) Option {
	return func(s *Searcher) { s.openalex = c }
}

// WithCrossrefClient sets the Crossref client.
func WithCrossrefClient(c *crossref.Client) Option {
	return func(s *Searcher) { s.crossref = c }
}

// WithS2Client sets the Semantic Scholar client.
func WithS2Client(c *s2.Client) Option {
	return func(s *Searcher) { s.s2 = c }
}

// NewSearcher creates a searcher, building default clients from the
// configuration's credentials for any not injected.
func NewSearcher(cfg *config.Config, opts ...Option) *Searcher {
	s := &Searcher{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.openalex == nil {
		var oaOpts []openalex.ClientOption
		if cfg.OpenAlexEmail != "" {
			oaOpts = append(oaOpts, openalex.WithMailto(cfg.OpenAlexEmail))
		}
		s.openalex = openalex.NewClient(oaOpts...)
	}
	if s.crossref == nil {
		var crOpts []crossref.ClientOption
		if cfg.OpenAlexEmail != "" {
			crOpts = append(crOpts, crossref.WithMailto(cfg.OpenAlexEmail))
		}
		s.crossref = crossref.NewClient(crOpts...)
	}
	if s.s2 == nil {
		var s2Opts []s2.ClientOption
		if cfg.SemanticScholarAPIKey != "" {
			s2Opts = append(s2Opts, s2.WithAPIKey(cfg.SemanticScholarAPIKey))
		}
		s.s2 = s2.NewClient(s2Opts...)
	}
	return s
}

type backend func(ctx context.Context, title string, limit int) ([]Result, error)

// backends returns the enabled backends in configuration order. When the
// configuration names no known source, OpenAlex alone is used.
func (s *Searcher) backends() (names []string, fns []backend) {
	all := map[string]backend{
		"openalex":        s.searchOpenAlex,
		"crossref":        s.searchCrossref,
		"semanticscholar": s.searchS2,
	}
	for _, name := range s.cfg.SearchSources {
		if fn, ok := all[name]; ok {
			names = append(names, name)
			fns = append(fns, fn)
		}
	}
	if len(names) == 0 {
		names = []string{"openalex"}
		fns = []backend{s.searchOpenAlex}
	}
	return names, fns
}

// Search queries the enabled sources for papers matching the title. In
// sequential mode the sources are tried in order and the first one with
// results wins. In merge mode all sources are queried concurrently and
// their results interleaved round-robin, deduplicated by DOI.
func (s *Searcher) Search(ctx context.Context, title string, limit int) ([]Result, error) {
	names, fns := s.backends()

	if !s.cfg.MergeSearchResults {
		for i, fn := range fns {
			results, err := fn(ctx, title, limit)
			if err != nil {
				return nil, err
			}
			if len(results) > 0 {
				return tagSource(results, names[i]), nil
			}
		}
		return nil, nil
	}

	resultsBySource := make([][]Result, len(fns))
	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func(i int, fn backend) {
			defer wg.Done()
			// A failing source is skipped so the others still contribute.
			results, err := fn(ctx, title, limit)
			if err != nil {
				return
			}
			resultsBySource[i] = tagSource(results, names[i])
		}(i, fn)
	}
	wg.Wait()

	return dedupeByDOI(interleave(resultsBySource, limit)), nil
}

func tagSource(results []Result, source string) []Result {
	for i := range results {
		results[i].Source = source
	}
	return results
}

// interleave merges per-source result lists round-robin (first hit from
// each source, then second from each, ...) up to limit entries.
func interleave(bySource [][]Result, limit int) []Result {
	var merged []Result
	for i := 0; ; i++ {
		any := false
		for _, results := range bySource {
			if i >= len(results) {
				continue
			}
			any = true
			merged = append(merged, results[i])
			if len(merged) >= limit {
				return merged
			}
		}
		if !any {
			return merged
		}
	}
}

// dedupeByDOI drops later duplicates of a DOI, keeping the first
// occurrence. Results without a DOI are always kept.
func dedupeByDOI(results []Result) []Result {
	seen := make(map[string]bool)
	deduped := results[:0]
	for _, r := range results {
		if r.DOI != "" && seen[r.DOI] {
			continue
		}
		if r.DOI != "" {
			seen[r.DOI] = true
		}
		deduped = append(deduped, r)
	}
	return deduped
}

func (s *Searcher) searchOpenAlex(ctx context.Context, title string, limit int) ([]Result, error) {
	works, err := s.openalex.SearchTitle(ctx, title, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(works))
	for _, w := range works {
		identifier := w.DOI()
		if identifier == "" {
			if id := w.IDs.OpenAlex; strings.Contains(strings.ToLower(id), "arxiv") {
				identifier = id[strings.LastIndex(id, "/")+1:]
			}
		}

		var year string
		if w.PublicationYear > 0 {
			year = fmt.Sprint(w.PublicationYear)
		}

		results = append(results, Result{
			DOI:       stripArxivDOI(identifier),
			Title:     w.Title,
			Authors:   splitDisplayNames(openalexAuthorNames(w)),
			Year:      year,
			Journal:   w.PrimaryLocation.Source.DisplayName,
			Abstract:  w.Abstract(),
			Publisher: w.PrimaryLocation.Source.HostOrganizationName,
			Type:      w.Type,
		})
	}
	return results, nil
}

func openalexAuthorNames(w openalex.Work) []string {
	names := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return names
}

func (s *Searcher) searchCrossref(ctx context.Context, title string, limit int) ([]Result, error) {
	works, err := s.crossref.SearchTitle(ctx, title, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(works))
	for _, w := range works {
		authors := make([]Author, 0, len(w.Author))
		for _, a := range w.Author {
			authors = append(authors, Author{Given: a.Given, Family: a.Family})
		}

		var year string
		if y := w.Published.Year(); y > 0 {
			year = fmt.Sprint(y)
		}

		results = append(results, Result{
			DOI:       w.DOI,
			Title:     first(w.Title),
			Authors:   authors,
			Year:      year,
			Journal:   first(w.ContainerTitle),
			Abstract:  crossref.CleanJATS(w.Abstract),
			Publisher: w.Publisher,
			Type:      w.Type,
		})
	}
	return results, nil
}

func (s *Searcher) searchS2(ctx context.Context, title string, limit int) ([]Result, error) {
	papers, err := s.s2.SearchTitle(ctx, title, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(papers))
	for _, p := range papers {
		identifier := p.ExternalIDs.DOI
		if identifier == "" {
			identifier = p.ExternalIDs.ArXiv
		}

		venue := p.Venue
		if venue == "" {
			venue = p.PublicationVenue.Name
		}

		var pubType string
		if len(p.PublicationTypes) > 0 {
			pubType = p.PublicationTypes[0]
		}

		var year string
		if p.Year > 0 {
			year = fmt.Sprint(p.Year)
		}

		names := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}

		results = append(results, Result{
			DOI:       stripArxivDOI(identifier),
			Title:     p.Title,
			Authors:   splitDisplayNames(names),
			Year:      year,
			Journal:   venue,
			Abstract:  p.Abstract,
			Publisher: p.PublicationVenue.Publisher,
			Type:      pubType,
		})
	}
	return results, nil
}

// stripArxivDOI reduces an arXiv registration DOI like
// "10.48550/arxiv.1312.6114" to the bare arXiv ID "1312.6114". Plain DOIs
// pass through unchanged.
func stripArxivDOI(identifier string) string {
	if !strings.Contains(strings.ToLower(identifier), "arxiv.") {
		return identifier
	}
	parts := strings.Split(identifier, ".")
	if len(parts) < 2 {
		return identifier
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1]
}

// splitDisplayNames converts display names to given/family pairs: the last
// token is the family name, everything before it the given names.
func splitDisplayNames(names []string) []Author {
	authors := make([]Author, 0, len(names))
	for _, name := range names {
		parts := strings.Fields(name)
		switch {
		case len(parts) == 0:
			continue
		case len(parts) == 1:
			authors = append(authors, Author{Family: parts[0]})
		default:
			authors = append(authors, Author{
				Given:  strings.Join(parts[:len(parts)-1], " "),
				Family: parts[len(parts)-1],
			})
		}
	}
	return authors
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
