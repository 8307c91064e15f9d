// Package callgraph builds a call graph over the caller→callee edges
// discovered during declaration collation.
package callgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zboralski/lattice"
)

// FuncCalls holds the discovered outgoing calls for one function.
type FuncCalls struct {
	Name    string
	Callees []string
}

// Build constructs a lattice.Graph from discovered call relations.
// Each function becomes a node and each call an edge; duplicates from
// repeated call sites are collapsed.
func Build(funcs []FuncCalls) *lattice.Graph {
	g := &lattice.Graph{}
	for _, f := range funcs {
		g.Nodes = append(g.Nodes, f.Name)
		for _, callee := range f.Callees {
			if callee == "" {
				continue
			}
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: f.Name,
				Callee: callee,
			})
		}
	}
	g.Dedup()
	return g
}

// Reachable performs BFS from the root functions and returns every
// function name reachable over call edges, roots included.
func Reachable(g *lattice.Graph, roots []string) map[string]bool {
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		adj[e.Caller] = append(adj[e.Caller], e.Callee)
	}

	reachable := make(map[string]bool)
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		if !reachable[r] {
			reachable[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		fn := queue[0]
		queue = queue[1:]
		for _, callee := range adj[fn] {
			if !reachable[callee] {
				reachable[callee] = true
				queue = append(queue, callee)
			}
		}
	}
	return reachable
}

// Prune returns the subgraph reachable from the root functions. Roots
// absent from the graph contribute nothing.
func Prune(g *lattice.Graph, roots []string) *lattice.Graph {
	keep := Reachable(g, roots)
	out := &lattice.Graph{}
	for _, n := range g.Nodes {
		if keep[n] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if keep[e.Caller] && keep[e.Callee] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// DOT renders the graph as Graphviz DOT, nodes and edges in sorted
// order so repeated runs produce identical files.
func DOT(g *lattice.Graph, title string) string {
	nodes := append([]string(nil), g.Nodes...)
	sort.Strings(nodes)

	type edge struct{ from, to string }
	edges := make([]edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, edge{e.Caller, e.Callee})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	var b strings.Builder
	fmt.Fprintf(&b, "digraph callgraph {\n")
	fmt.Fprintf(&b, "  label=%q;\n", title)
	fmt.Fprintf(&b, "  rankdir=LR;\n")
	fmt.Fprintf(&b, "  node [shape=box, fontname=\"monospace\"];\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "  %s [label=%q];\n", dotID(n), n)
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "  %s -> %s;\n", dotID(e.from), dotID(e.to))
	}
	b.WriteString("}\n")
	return b.String()
}

// dotID creates a safe DOT identifier from a function name.
func dotID(name string) string {
	var b strings.Builder
	b.WriteString("n_")
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		} else {
			fmt.Fprintf(&b, "_%04x", c)
		}
	}
	return b.String()
}
