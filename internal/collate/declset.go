// Package collate merges function prototypes and global declarations
// into deduplicated, deterministically ordered sets.
package collate

import "sort"

// DeclSet is a deduplicating set of rendered declaration text. The
// first write for a given text wins; later duplicates are absorbed.
type DeclSet struct {
	seen map[string]bool
}

// NewDeclSet returns an empty set.
func NewDeclSet() *DeclSet {
	return &DeclSet{seen: make(map[string]bool)}
}

// Add inserts text and reports whether it was new.
func (s *DeclSet) Add(text string) bool {
	if text == "" || s.seen[text] {
		return false
	}
	s.seen[text] = true
	return true
}

// Len returns the number of distinct declarations.
func (s *DeclSet) Len() int { return len(s.seen) }

// Sorted returns the declarations in lexicographic order on the
// rendered text, the emission order that keeps output diff-stable.
func (s *DeclSet) Sorted() []string {
	out := make([]string, 0, len(s.seen))
	for t := range s.seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
