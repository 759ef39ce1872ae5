package modules

import (
	"context"
	"strings"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/gbooks"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/spf13/pflag"
)

type isbnDescriptor struct{}

func (isbnDescriptor) Name() string                { return "isbn" }
func (isbnDescriptor) AddCLIArgs(fs *pflag.FlagSet) {}

// ISBNModule identifies ISBN-10 and ISBN-13 numbers and resolves them to
// book entries through the Google Books API.
type ISBNModule struct {
	cfg    *config.Config
	client *gbooks.Client
}

// NewISBNModule creates the ISBN module. A nil client gets the default.
func NewISBNModule(cfg *config.Config, client *gbooks.Client) *ISBNModule {
	if client == nil {
		client = gbooks.NewClient()
	}
	return &ISBNModule{cfg: cfg, client: client}
}

// RegisterHooks registers the ISBN classifier and resolver.
func (m *ISBNModule) RegisterHooks(reg *hooks.Registry) error {
	return registerAll(reg,
		registration{hooks.Identify, hooks.IdentifyFunc(m.identify)},
		registration{hooks.Resolve, hooks.ResolveFunc(m.resolve)},
	)
}

func (m *ISBNModule) identify(identifier string) string {
	if identify.IsISBN(identifier) {
		return identify.KindISBN
	}
	return ""
}

// resolve builds a book record from volume metadata. Google Books has no
// BibTeX export, so the record is assembled field by field; the citekey is
// left to the normal postprocessing pass.
func (m *ISBNModule) resolve(ctx context.Context, kind, identifier string) (bibtex.Record, error) {
	if kind != identify.KindISBN {
		return nil, nil
	}

	vol, err := m.client.LookupISBN(ctx, identifier)
	if err != nil {
		return nil, err
	}

	isbn := strings.ReplaceAll(identifier, "-", "")
	rec := bibtex.Record{
		bibtex.FieldEntryType: "book",
		bibtex.FieldID:        isbn,
		"isbn":                isbn,
	}
	if title := vol.FullTitle(); title != "" {
		rec["title"] = title
	}
	if len(vol.Authors) > 0 {
		rec["author"] = strings.Join(vol.Authors, " and ")
	}
	if vol.Publisher != "" {
		rec["publisher"] = vol.Publisher
	}
	if year := vol.Year(); year != "" {
		rec["year"] = year
	}
	return rec, nil
}
