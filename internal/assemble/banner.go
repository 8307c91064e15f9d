// Package assemble lays out the final export document: banners,
// synthetic built-in types, equates, type definitions, declaration
// sections, and function bodies, routed to one or two output units.
package assemble

import (
	"fmt"
	"strings"
)

// CommentStyle selects line or block comments for banners.
type CommentStyle int

const (
	CStyle   CommentStyle = iota // /* ... */
	CPPStyle                     // // ...
)

const bannerRule = "=============================================================================="

// Banner renders the delimiting comment block that introduces an
// output section.
func Banner(title, desc string, style CommentStyle) string {
	open, close := "//", ""
	if style == CStyle {
		open, close = "/*", " */"
	}
	var b strings.Builder
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s%s%s\n", open, bannerRule, close)
	fmt.Fprintf(&b, "%s %-74s%s\n", open, title, close)
	fmt.Fprintf(&b, "%s %-74s%s\n", open, desc, close)
	fmt.Fprintf(&b, "%s%s%s\n", open, bannerRule, close)
	return b.String()
}
