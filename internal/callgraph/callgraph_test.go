package callgraph

import (
	"strings"
	"testing"
)

func TestBuildDedup(t *testing.T) {
	g := Build([]FuncCalls{
		{Name: "a", Callees: []string{"b", "b", "c"}},
		{Name: "b", Callees: []string{"c"}},
	})
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %v, want [a b]", g.Nodes)
	}
	if len(g.Edges) != 3 {
		t.Errorf("got %d edges, want 3 after dedup", len(g.Edges))
	}
}

func TestReachable(t *testing.T) {
	g := Build([]FuncCalls{
		{Name: "a", Callees: []string{"b"}},
		{Name: "b", Callees: []string{"c"}},
		{Name: "d", Callees: []string{"e"}},
	})
	r := Reachable(g, []string{"a"})
	for _, want := range []string{"a", "b", "c"} {
		if !r[want] {
			t.Errorf("%s not reachable from a", want)
		}
	}
	if r["d"] || r["e"] {
		t.Error("disconnected functions reported reachable")
	}
}

func TestReachableCycle(t *testing.T) {
	g := Build([]FuncCalls{
		{Name: "a", Callees: []string{"b"}},
		{Name: "b", Callees: []string{"a"}},
	})
	r := Reachable(g, []string{"a"})
	if len(r) != 2 {
		t.Errorf("reachable = %v, want {a, b}", r)
	}
}

func TestPrune(t *testing.T) {
	g := Build([]FuncCalls{
		{Name: "a", Callees: []string{"b"}},
		{Name: "b", Callees: []string{"c"}},
		{Name: "d", Callees: []string{"e"}},
	})
	p := Prune(g, []string{"a"})
	if len(p.Nodes) != 2 {
		t.Errorf("nodes = %v, want [a b]", p.Nodes)
	}
	if len(p.Edges) != 2 {
		t.Errorf("edges = %v, want a→b and b→c", p.Edges)
	}
	for _, e := range p.Edges {
		if e.Caller == "d" || e.Callee == "e" {
			t.Errorf("disconnected edge survived pruning: %v", e)
		}
	}
}

func TestDOTDeterministic(t *testing.T) {
	funcs := []FuncCalls{
		{Name: "main", Callees: []string{"helper", "FUN_00401000"}},
		{Name: "helper", Callees: nil},
	}
	d1 := DOT(Build(funcs), "test")
	d2 := DOT(Build(funcs), "test")
	if d1 != d2 {
		t.Error("DOT output not byte-identical across runs")
	}
	if !strings.Contains(d1, `label="main"`) {
		t.Errorf("missing node label:\n%s", d1)
	}
	if !strings.Contains(d1, "n_main -> n_helper;") {
		t.Errorf("missing edge:\n%s", d1)
	}
}
