package assemble

import (
	"fmt"
	"strings"

	"cexport/internal/program"
)

// Content is everything the assembler lays out for one run. Empty
// sections are skipped along with their banners.
type Content struct {
	Builtins  string // synthetic built-in typedefs; empty disables the section
	Equates   []program.Equate
	Types     string // rendered type definitions
	FuncDecls []string
	Globals   []string
	Bodies    []string // function bodies, already in address order
}

// Build produces the final text for the requested output units. When
// both units are requested the header receives the built-ins, equates,
// types, function declarations, and globals; the implementation
// includes the header by name and carries only the bodies. With a
// single implementation unit everything is concatenated in fixed
// section order.
func Build(c Content, style CommentStyle, wantHeader, wantImpl bool, headerName string) (header, impl string) {
	var decls strings.Builder
	writeDecls(&decls, c, style)

	var bodies strings.Builder
	if len(c.Bodies) > 0 {
		bodies.WriteString(Banner("FUNCTION IMPLEMENTATIONS", "Decompiled code from the binary", style))
		for _, body := range c.Bodies {
			bodies.WriteString(body)
			bodies.WriteByte('\n')
		}
	}

	switch {
	case wantHeader && wantImpl:
		var ib strings.Builder
		if decls.Len() > 0 {
			fmt.Fprintf(&ib, "#include %q\n", headerName)
		}
		ib.WriteString(bodies.String())
		return decls.String(), ib.String()
	case wantHeader:
		return decls.String(), ""
	default:
		var ib strings.Builder
		ib.WriteString(decls.String())
		ib.WriteString(bodies.String())
		return "", ib.String()
	}
}

func writeDecls(b *strings.Builder, c Content, style CommentStyle) {
	if c.Builtins != "" {
		b.WriteString(Banner("BUILT-IN TYPES", "Synthetic aliases for widths the type system cannot express", style))
		b.WriteString(c.Builtins)
		b.WriteByte('\n')
	}
	if len(c.Equates) > 0 {
		b.WriteString(Banner("EQUATES / DEFINES", "Constants and named values extracted from the binary", style))
		for _, e := range c.Equates {
			fmt.Fprintf(b, "#define %s %s\n", e.Name, e.Value)
		}
	}
	if c.Types != "" {
		b.WriteString(Banner("DATA TYPES", "These types were decompiled from the binary and may not match original source", style))
		b.WriteString(c.Types)
	}
	if len(c.FuncDecls) > 0 {
		b.WriteString(Banner("FUNCTION DECLARATIONS", "These function prototypes were extracted from binary analysis", style))
		for _, d := range c.FuncDecls {
			b.WriteString(d)
			b.WriteByte('\n')
		}
	}
	if len(c.Globals) > 0 {
		b.WriteString(Banner("GLOBAL VARIABLES", "These global variables were referenced in the decompiled functions", style))
		for _, d := range c.Globals {
			b.WriteString(d)
			b.WriteByte('\n')
		}
	}
}
