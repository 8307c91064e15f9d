// Package typeclose computes the transitive closure of data types
// required by an export selection, so the emitted type section is
// self-contained.
package typeclose

import "cexport/internal/program"

// Close expands the seed set along depends-on edges: pointer pointee,
// array element, typedef base, composite members in declaration order,
// and function-signature return then parameters. The result contains
// every reachable type exactly once, in discovery order.
//
// The traversal uses an explicit worklist and a visited set keyed by
// type identity, marked before expansion, so cyclic graphs (a struct
// pointing at itself) terminate and deeply nested composites cannot
// exhaust the stack.
func Close(seeds []*program.Type) []*program.Type {
	visited := make(map[*program.Type]bool)
	var out []*program.Type

	var stack []*program.Type
	for i := len(seeds) - 1; i >= 0; i-- {
		stack = append(stack, seeds[i])
	}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t == nil || visited[t] {
			continue
		}
		visited[t] = true
		out = append(out, t)

		// Children pushed in reverse so they pop in declaration order.
		var deps []*program.Type
		switch t.Kind {
		case program.Pointer, program.Array, program.Typedef:
			deps = []*program.Type{t.Base}
		case program.Composite:
			for _, m := range t.Members {
				deps = append(deps, m.Type)
			}
		case program.FuncDef:
			deps = append(deps, t.Return)
			deps = append(deps, t.Params...)
		}
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, deps[i])
		}
	}
	return out
}

// Contains reports whether the closed slice already holds t. Intended
// for tests and diagnostics; closure membership during computation is
// tracked by the visited set.
func Contains(closed []*program.Type, t *program.Type) bool {
	for _, c := range closed {
		if c == t {
			return true
		}
	}
	return false
}
