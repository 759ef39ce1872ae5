package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/bibkit/doi2bib/internal/bibtex"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		hook     Hook
		callback any
		wantErr  error
	}{
		{name: "identify", hook: Identify, callback: IdentifyFunc(func(string) string { return "" })},
		{name: "resolve", hook: Resolve, callback: ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) { return nil, nil })},
		{name: "unknown hook", hook: Hook("bogus"), callback: IdentifyFunc(func(string) string { return "" }), wantErr: ErrUnknownHook},
		{name: "wrong callback type", hook: Identify, callback: "not a function", wantErr: ErrInvalidCallback},
		{name: "callback for other hook", hook: Resolve, callback: IdentifyFunc(func(string) string { return "" }), wantErr: ErrInvalidCallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.hook, tt.callback)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIdentifyKindFirstWins(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Identify, IdentifyFunc(func(string) string { return "" }))
	mustRegister(t, reg, Identify, IdentifyFunc(func(string) string { return "doi" }))
	mustRegister(t, reg, Identify, IdentifyFunc(func(string) string { return "arxiv" }))

	kind, ok := reg.IdentifyKind("10.1000/x")
	if !ok || kind != "doi" {
		t.Errorf("IdentifyKind() = %q, %v; want doi, true", kind, ok)
	}
}

func TestIdentifyKindNoMatch(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Identify, IdentifyFunc(func(string) string { return "" }))

	if kind, ok := reg.IdentifyKind("garbage"); ok {
		t.Errorf("IdentifyKind() = %q, true; want miss", kind)
	}
}

func TestResolveRecordShortCircuits(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		calls++
		return nil, nil // not mine
	}))
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		calls++
		return bibtex.Record{"title": "hit"}, nil
	}))
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		calls++
		return bibtex.Record{"title": "never"}, nil
	}))

	rec, err := reg.ResolveRecord(context.Background(), "doi", "10.1000/x")
	if err != nil {
		t.Fatalf("ResolveRecord() error = %v", err)
	}
	if rec["title"] != "hit" {
		t.Errorf("ResolveRecord() = %v, want the second resolver's record", rec)
	}
	if calls != 2 {
		t.Errorf("ResolveRecord() invoked %d resolvers, want 2", calls)
	}
}

func TestResolveRecordErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		return nil, boom
	}))
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		t.Fatal("resolver after a failing one should not run")
		return nil, nil
	}))

	if _, err := reg.ResolveRecord(context.Background(), "doi", "x"); !errors.Is(err, boom) {
		t.Errorf("ResolveRecord() error = %v, want %v", err, boom)
	}
}

func TestResolveRecordAllDecline(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Resolve, ResolveFunc(func(context.Context, string, string) (bibtex.Record, error) {
		return nil, nil
	}))

	if _, err := reg.ResolveRecord(context.Background(), "doi", "x"); !errors.Is(err, ErrNoResolver) {
		t.Errorf("ResolveRecord() error = %v, want ErrNoResolver", err)
	}
}

func TestFoldBefore(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, BeforePostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		rec["a"] = "1"
		return rec, nil
	}))
	mustRegister(t, reg, BeforePostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		rec["b"] = rec["a"] + "2"
		return rec, nil
	}))

	rec, err := reg.FoldBefore(context.Background(), "doi", "x", bibtex.Record{})
	if err != nil {
		t.Fatalf("FoldBefore() error = %v", err)
	}
	if rec["b"] != "12" {
		t.Errorf("FoldBefore() should thread records through callbacks, got %v", rec)
	}
}

func TestFoldBeforeErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	mustRegister(t, reg, BeforePostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		return nil, boom
	}))

	if _, err := reg.FoldBefore(context.Background(), "doi", "x", bibtex.Record{}); !errors.Is(err, boom) {
		t.Errorf("FoldBefore() error = %v, want %v", err, boom)
	}
}

func TestFoldAfterSwallowsErrors(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, AfterPostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		rec["a"] = "kept"
		return rec, nil
	}))
	mustRegister(t, reg, AfterPostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		return nil, errors.New("enrichment failed")
	}))
	mustRegister(t, reg, AfterPostprocess, TransformFunc(func(_ context.Context, _, _ string, rec bibtex.Record) (bibtex.Record, error) {
		rec["b"] = "also kept"
		return rec, nil
	}))

	rec := reg.FoldAfter(context.Background(), "doi", "x", bibtex.Record{})
	if rec["a"] != "kept" || rec["b"] != "also kept" {
		t.Errorf("FoldAfter() should keep the record across a failing callback, got %v", rec)
	}
}

func TestRunCLIExec(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, CLIExec, CLIExecFunc(func(args []string) (bool, error) {
		return false, nil
	}))
	mustRegister(t, reg, CLIExec, CLIExecFunc(func(args []string) (bool, error) {
		return true, nil
	}))

	handled, err := reg.RunCLIExec([]string{"x"})
	if err != nil {
		t.Fatalf("RunCLIExec() error = %v", err)
	}
	if !handled {
		t.Error("RunCLIExec() = false, want a callback to claim the invocation")
	}
}

func mustRegister(t *testing.T, reg *Registry, hook Hook, callback any) {
	t.Helper()
	if err := reg.Register(hook, callback); err != nil {
		t.Fatalf("Register(%s) error = %v", hook, err)
	}
}
