package modules

import (
	"context"
	"strings"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/dblp"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/spf13/pflag"
)

type dblpDescriptor struct{}

func (dblpDescriptor) Name() string                { return "dblp" }
func (dblpDescriptor) AddCLIArgs(fs *pflag.FlagSet) {}

// DBLPModule cross-matches resolved entries against dblp.org. When a
// matching conference paper exists it appends the venue and year to the
// addendum field. This mostly pays off for arXiv preprints whose published
// version lives in conference proceedings.
type DBLPModule struct {
	cfg    *config.Config
	client *dblp.Client
}

// NewDBLPModule creates the dblp module. A nil client gets the default.
func NewDBLPModule(cfg *config.Config, client *dblp.Client) *DBLPModule {
	if client == nil {
		client = dblp.NewClient()
	}
	return &DBLPModule{cfg: cfg, client: client}
}

// RegisterHooks registers the cross-match enrichment hook. The module
// neither classifies nor resolves identifiers.
func (m *DBLPModule) RegisterHooks(reg *hooks.Registry) error {
	return registerAll(reg,
		registration{hooks.AfterPostprocess, hooks.TransformFunc(m.crossmatch)},
	)
}

// crossmatch queries dblp by first-author last name and title and appends
// "Published at VENUE~YEAR." to the addendum when a conference paper
// matches. Best effort: query failures keep the record unchanged.
func (m *DBLPModule) crossmatch(ctx context.Context, kind, identifier string, rec bibtex.Record) (bibtex.Record, error) {
	if !m.cfg.CrossmatchWithDBLP || !rec.Has("title") || !rec.Has("author") {
		return rec, nil
	}

	title := rec["title"]
	query := firstAuthorLastName(rec["author"]) + " " + title

	pubs, err := m.client.Search(ctx, query)
	if err != nil {
		return rec, nil
	}

	for _, pub := range pubs {
		if pub.Type != dblp.ConferencePaperType {
			continue
		}
		if title != strings.TrimSuffix(pub.Title, ".") &&
			!strings.Contains(pub.EE, identifier) &&
			!strings.Contains(pub.Volume, identifier) {
			continue
		}
		if pub.Venue == "" || pub.Year == "" {
			continue
		}

		addendum := strings.TrimSpace(
			rec["addendum"] + " Published at " + pub.Venue + "~" + pub.Year + ".")
		rec["addendum"] = addendum
		break
	}
	return rec, nil
}

// firstAuthorLastName returns the last name of the first author in a
// BibTeX author field, with protective braces removed.
func firstAuthorLastName(field string) string {
	names := bibtex.SplitAuthors(field)
	if len(names) == 0 {
		return ""
	}
	name := bibtex.SplitName(names[0])
	return strings.NewReplacer("{", "", "}", "").Replace(name.Last)
}
