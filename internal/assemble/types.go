package assemble

import (
	"fmt"
	"sort"
	"strings"

	"cexport/internal/program"
)

// RenderTypes renders the type-definition section for the given type
// set. Composites get forward typedef declarations first so pointer
// cycles resolve, then enums, plain typedefs, function-pointer
// typedefs, and finally composite bodies in value-dependency order
// (a struct embedded by value is defined before its container).
// Ordering within each group is lexicographic on the type name, so the
// section is byte-stable across runs.
func RenderTypes(types []*program.Type) string {
	var composites, enums, typedefs, funcdefs []*program.Type
	inSet := make(map[*program.Type]bool, len(types))
	for _, t := range types {
		inSet[t] = true
		switch t.Kind {
		case program.Composite:
			composites = append(composites, t)
		case program.Typedef:
			typedefs = append(typedefs, t)
		case program.FuncDef:
			if t.Name != "" {
				funcdefs = append(funcdefs, t)
			}
		case program.Leaf:
			if len(t.Enum) > 0 {
				enums = append(enums, t)
			}
		}
	}
	byName := func(s []*program.Type) {
		sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	}
	byName(composites)
	byName(enums)
	byName(typedefs)
	byName(funcdefs)

	var b strings.Builder

	for _, t := range composites {
		kw := "struct"
		if t.Union {
			kw = "union"
		}
		fmt.Fprintf(&b, "typedef %s %s %s;\n", kw, t.Name, t.Name)
	}
	if len(composites) > 0 {
		b.WriteByte('\n')
	}

	for _, t := range enums {
		renderEnum(&b, t)
		b.WriteByte('\n')
	}
	for _, t := range typedefs {
		b.WriteString(renderTypedef(t))
	}
	if len(typedefs) > 0 {
		b.WriteByte('\n')
	}
	for _, t := range funcdefs {
		b.WriteString(renderFuncDef(t))
	}
	if len(funcdefs) > 0 {
		b.WriteByte('\n')
	}

	emitted := make(map[*program.Type]bool)
	for _, t := range composites {
		renderCompositeDeps(&b, t, inSet, emitted, make(map[*program.Type]bool))
	}
	return b.String()
}

func renderEnum(b *strings.Builder, t *program.Type) {
	fmt.Fprintf(b, "typedef enum %s {\n", t.Name)
	for i, v := range t.Enum {
		sep := ","
		if i == len(t.Enum)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "    %s = %d%s\n", v.Name, v.Value, sep)
	}
	fmt.Fprintf(b, "} %s;\n", t.Name)
}

func renderTypedef(t *program.Type) string {
	base := t.Base.Display()
	// Array dimensions belong after the new name.
	if i := strings.Index(base, "["); i >= 0 && strings.Contains(base[i:], "]") {
		elem := base[:i]
		dims := base[i:]
		return fmt.Sprintf("typedef %s %s%s;\n", strings.TrimRight(elem, " "), t.Name, dims)
	}
	if strings.HasSuffix(base, "*") {
		return fmt.Sprintf("typedef %s%s;\n", base, t.Name)
	}
	return fmt.Sprintf("typedef %s %s;\n", base, t.Name)
}

func renderFuncDef(t *program.Type) string {
	params := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		params = append(params, p.Display())
	}
	plist := strings.Join(params, ", ")
	if plist == "" {
		plist = "void"
	}
	return fmt.Sprintf("typedef %s (*%s)(%s);\n", t.Return.Display(), t.Name, plist)
}

// renderCompositeDeps emits t's by-value composite dependencies before
// t itself. Pointer members do not force ordering (the forward
// typedefs cover them). inProgress breaks illegal by-value cycles.
func renderCompositeDeps(b *strings.Builder, t *program.Type, inSet, emitted, inProgress map[*program.Type]bool) {
	if emitted[t] || inProgress[t] {
		return
	}
	inProgress[t] = true
	for _, m := range t.Members {
		if dep := valueComposite(m.Type); dep != nil && inSet[dep] {
			renderCompositeDeps(b, dep, inSet, emitted, inProgress)
		}
	}
	delete(inProgress, t)
	emitted[t] = true
	renderComposite(b, t)
}

// valueComposite follows array and typedef edges to find a composite
// embedded by value, stopping at pointers.
func valueComposite(t *program.Type) *program.Type {
	for t != nil {
		switch t.Kind {
		case program.Composite:
			return t
		case program.Array, program.Typedef:
			t = t.Base
		default:
			return nil
		}
	}
	return nil
}

func renderComposite(b *strings.Builder, t *program.Type) {
	kw := "struct"
	if t.Union {
		kw = "union"
	}
	fmt.Fprintf(b, "%s %s {\n", kw, t.Name)
	for _, m := range t.Members {
		fmt.Fprintf(b, "    %s\n", memberDecl(m))
	}
	fmt.Fprintf(b, "};\n\n")
}

func memberDecl(m program.Member) string {
	display := m.Type.Display()
	if i := strings.Index(display, "["); i >= 0 && strings.Contains(display[i:], "]") {
		base := display[:i]
		dims := display[i:]
		space := " "
		if strings.HasSuffix(base, "*") {
			space = ""
		}
		return base + space + m.Name + dims + ";"
	}
	if strings.HasSuffix(display, "*") {
		return display + m.Name + ";"
	}
	return display + " " + m.Name + ";"
}
