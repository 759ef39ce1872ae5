package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/crossref"
	"github.com/bibkit/doi2bib/internal/openalex"
	"github.com/bibkit/doi2bib/internal/s2"
)

func TestStripArxivDOI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "arxiv registration doi", input: "10.48550/arxiv.1312.6114", want: "1312.6114"},
		{name: "mixed case", input: "10.48550/arXiv.2101.12345", want: "2101.12345"},
		{name: "plain doi unchanged", input: "10.1038/nature14539", want: "10.1038/nature14539"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripArxivDOI(tt.input); got != tt.want {
				t.Errorf("stripArxivDOI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitDisplayNames(t *testing.T) {
	got := splitDisplayNames([]string{"Diederik P. Kingma", "Welling", ""})
	want := []Author{
		{Given: "Diederik P.", Family: "Kingma"},
		{Family: "Welling"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitDisplayNames() = %+v, want %+v", got, want)
	}
}

func TestDedupeByDOI(t *testing.T) {
	results := []Result{
		{DOI: "10.1/a", Source: "openalex"},
		{DOI: "", Source: "openalex"},
		{DOI: "10.1/a", Source: "crossref"},
		{DOI: "", Source: "crossref"},
		{DOI: "10.1/b", Source: "crossref"},
	}

	got := dedupeByDOI(results)
	if len(got) != 4 {
		t.Fatalf("dedupeByDOI() kept %d results, want 4", len(got))
	}
	if got[0].Source != "openalex" {
		t.Error("first occurrence of a DOI should win")
	}
	// Results without a DOI are never deduplicated against each other.
	empties := 0
	for _, r := range got {
		if r.DOI == "" {
			empties++
		}
	}
	if empties != 2 {
		t.Errorf("kept %d DOI-less results, want 2", empties)
	}
}

func TestInterleave(t *testing.T) {
	bySource := [][]Result{
		{{Title: "a1"}, {Title: "a2"}},
		{{Title: "b1"}, {Title: "b2"}, {Title: "b3"}},
	}

	got := interleave(bySource, 10)
	want := []string{"a1", "b1", "a2", "b2", "b3"}
	if len(got) != len(want) {
		t.Fatalf("interleave() returned %d results, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("interleave()[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestInterleaveLimit(t *testing.T) {
	bySource := [][]Result{
		{{Title: "a1"}, {Title: "a2"}},
		{{Title: "b1"}, {Title: "b2"}},
	}
	if got := interleave(bySource, 3); len(got) != 3 {
		t.Errorf("interleave() returned %d results, want the limit of 3", len(got))
	}
}

func openalexServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchSequentialFirstSourceWins(t *testing.T) {
	oa := openalexServer(t, `{"results": [{"title": "Hit", "ids": {"doi": "https://doi.org/10.1/a"}}]}`)
	cr := openalexServer(t, `{"message": {"items": [{"DOI": "10.1/never"}]}}`)

	cfg := config.Default()
	cfg.SearchSources = []string{"openalex", "crossref"}

	s := NewSearcher(cfg,
		WithOpenAlexClient(openalex.NewClient(openalex.WithBaseURL(oa.URL))),
		WithCrossrefClient(crossref.NewClient(crossref.WithBaseURL(cr.URL))),
	)

	results, err := s.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Hit" {
		t.Fatalf("Search() = %+v, want the OpenAlex hit", results)
	}
	if results[0].Source != "openalex" {
		t.Errorf("Source = %q, want openalex", results[0].Source)
	}
	if results[0].DOI != "10.1/a" {
		t.Errorf("DOI = %q, want the doi.org prefix stripped", results[0].DOI)
	}
}

func TestSearchSequentialFallsThrough(t *testing.T) {
	oa := openalexServer(t, `{"results": []}`)
	cr := openalexServer(t, `{"message": {"items": [{"DOI": "10.1/b", "title": ["Fallback"]}]}}`)

	cfg := config.Default()
	cfg.SearchSources = []string{"openalex", "crossref"}

	s := NewSearcher(cfg,
		WithOpenAlexClient(openalex.NewClient(openalex.WithBaseURL(oa.URL))),
		WithCrossrefClient(crossref.NewClient(crossref.WithBaseURL(cr.URL))),
	)

	results, err := s.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Fallback" {
		t.Fatalf("Search() = %+v, want the Crossref fallback", results)
	}
	if results[0].Source != "crossref" {
		t.Errorf("Source = %q, want crossref", results[0].Source)
	}
}

func TestSearchMergeInterleavesAndDedupes(t *testing.T) {
	oa := openalexServer(t, `{"results": [
		{"title": "Shared", "ids": {"doi": "https://doi.org/10.1/shared"}},
		{"title": "OA only", "ids": {"doi": "https://doi.org/10.1/oa"}}
	]}`)
	cr := openalexServer(t, `{"message": {"items": [
		{"DOI": "10.1/shared", "title": ["Shared"]},
		{"DOI": "10.1/cr", "title": ["CR only"]}
	]}}`)

	cfg := config.Default()
	cfg.SearchSources = []string{"openalex", "crossref"}
	cfg.MergeSearchResults = true

	s := NewSearcher(cfg,
		WithOpenAlexClient(openalex.NewClient(openalex.WithBaseURL(oa.URL))),
		WithCrossrefClient(crossref.NewClient(crossref.WithBaseURL(cr.URL))),
	)

	results, err := s.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// Interleaved: Shared(oa), Shared(cr) deduped, OA only, CR only.
	if len(results) != 3 {
		t.Fatalf("Search() returned %d results, want 3: %+v", len(results), results)
	}
	if results[0].DOI != "10.1/shared" || results[0].Source != "openalex" {
		t.Errorf("results[0] = %+v, want the OpenAlex copy of the shared DOI", results[0])
	}
}

func TestSearchMergeToleratesFailingSource(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)
	cr := openalexServer(t, `{"message": {"items": [{"DOI": "10.1/ok", "title": ["Survivor"]}]}}`)

	cfg := config.Default()
	cfg.SearchSources = []string{"openalex", "crossref"}
	cfg.MergeSearchResults = true

	s := NewSearcher(cfg,
		WithOpenAlexClient(openalex.NewClient(openalex.WithBaseURL(failing.URL))),
		WithCrossrefClient(crossref.NewClient(crossref.WithBaseURL(cr.URL))),
	)

	results, err := s.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Survivor" {
		t.Errorf("Search() = %+v, want only the healthy source's hit", results)
	}
}

func TestSearchS2ArxivFallback(t *testing.T) {
	s2srv := openalexServer(t, `{"data": [{
		"title": "Preprint",
		"externalIds": {"DOI": "", "ArXiv": "1312.6114"},
		"authors": [{"name": "Diederik P. Kingma"}]
	}]}`)

	cfg := config.Default()
	cfg.SearchSources = []string{"semanticscholar"}

	s := NewSearcher(cfg, WithS2Client(s2.NewClient(s2.WithBaseURL(s2srv.URL))))

	results, err := s.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].DOI != "1312.6114" {
		t.Fatalf("Search() = %+v, want the arXiv ID as identifier", results)
	}
	if results[0].Authors[0].Family != "Kingma" {
		t.Errorf("Authors = %+v", results[0].Authors)
	}
}
