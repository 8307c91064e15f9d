package export

import (
	"testing"

	"cexport/internal/program"
)

func filterFor(t *testing.T, cfg Config, funcs ...*program.Function) *Filter {
	t.Helper()
	return NewFilter(&cfg, program.New("t", funcs, nil, nil))
}

func TestTagFilterTruthTable(t *testing.T) {
	tagged := &program.Function{Entry: 1, Name: "f", Tags: []string{"DEPRECATED"}}
	untagged := &program.Function{Entry: 2, Name: "g"}

	// Exclusion mode drops matches, keeps non-matches.
	excl := filterFor(t, Config{TagFilter: []string{"DEPRECATED"}, TagExclude: true}, tagged, untagged)
	if excl.Include(tagged) {
		t.Error("exclusion mode kept a tagged function")
	}
	if !excl.Include(untagged) {
		t.Error("exclusion mode dropped an untagged function")
	}

	// Inclusion mode keeps matches, drops non-matches.
	incl := filterFor(t, Config{TagFilter: []string{"DEPRECATED"}, TagExclude: false}, tagged, untagged)
	if !incl.Include(tagged) {
		t.Error("inclusion mode dropped a tagged function")
	}
	if incl.Include(untagged) {
		t.Error("inclusion mode kept an untagged function")
	}
}

func TestEmptyTagFilterPassesAll(t *testing.T) {
	fn := &program.Function{Entry: 1, Name: "f", Tags: []string{"ANY"}}
	f := filterFor(t, Config{TagExclude: true}, fn)
	if !f.Include(fn) {
		t.Error("empty tag filter should pass everything")
	}
}

func TestNameAllowListShortCircuits(t *testing.T) {
	// The function matches the inclusion-mode tag filter, but the
	// allow list excludes it regardless.
	fn := &program.Function{Entry: 1, Name: "f", Tags: []string{"KEEP"}}
	cfg := Config{
		TagFilter:     []string{"KEEP"},
		TagExclude:    false,
		NameAllowList: []string{"other"},
	}
	f := filterFor(t, cfg, fn)
	if f.Include(fn) {
		t.Error("allow list did not short-circuit")
	}

	cfg.NameAllowList = []string{"f"}
	if !filterFor(t, cfg, fn).Include(fn) {
		t.Error("listed function excluded")
	}
}

func TestUnknownTagIgnored(t *testing.T) {
	fn := &program.Function{Entry: 1, Name: "f", Tags: []string{"REAL"}}
	// NOSUCH is not in the registry; it is warned about and dropped,
	// leaving an empty filter that passes everything.
	f := filterFor(t, Config{TagFilter: []string{"NOSUCH"}, TagExclude: false}, fn)
	if !f.Include(fn) {
		t.Error("missing tag should degrade to a pass-through filter")
	}
}
