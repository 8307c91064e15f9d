// Package program models the host analysis platform's view of a binary:
// functions, data types, globals, and equates, plus the capability
// interfaces the export engine needs from the platform (decompilation,
// optional analysis pre-pass).
package program

import (
	"fmt"
	"sort"
	"strings"
)

// Address is a code or data location in the program's address space.
type Address uint64

func (a Address) String() string { return fmt.Sprintf("0x%x", uint64(a)) }

// ParseAddress parses a hex address with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("program: empty address")
	}
	var v uint64
	for _, c := range s {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("program: bad address %q", s)
		}
		v = v<<4 | d
	}
	return Address(v), nil
}

// TypeKind classifies a type node for closure traversal and rendering.
type TypeKind int

const (
	Leaf      TypeKind = iota // primitives, enums, opaque types
	Pointer                   // Base is the pointee
	Array                     // Base is the element type, Len the count
	Typedef                   // Base is the aliased type
	Composite                 // struct or union, Members in declaration order
	FuncDef                   // function signature: Return + Params
)

// Member is one field of a composite type.
type Member struct {
	Name string
	Type *Type
}

// EnumValue is one named constant of an enum leaf type.
type EnumValue struct {
	Name  string
	Value int64
}

// Type is one node in the program's type graph. Identity is pointer
// identity; the graph may be cyclic (a struct holding a pointer to
// itself), so traversals must keep a visited set.
type Type struct {
	Kind    TypeKind
	Name    string // declared name; empty for anonymous pointer/array nodes
	Base    *Type  // Pointer pointee, Array element, Typedef base
	Len     int    // Array element count
	Union   bool   // Composite: union instead of struct
	Members []Member
	Return  *Type // FuncDef
	Params  []*Type
	Enum    []EnumValue // Leaf enums only
}

// Display returns the C display text for the type, e.g. "int",
// "char *", "int[4]". Array dimensions stay attached here; declaration
// rendering relocates them after the variable name.
func (t *Type) Display() string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case Pointer:
		base := t.Base.Display()
		if strings.HasSuffix(base, "*") {
			return base + "*"
		}
		return base + " *"
	case Array:
		return fmt.Sprintf("%s[%d]", t.Base.Display(), t.Len)
	default:
		return t.Name
	}
}

// Function is one function known to the platform. The engine holds
// these by reference; Entry is the identity used for ordering and
// deduplication.
type Function struct {
	Entry       Address
	Name        string
	Tags        []string
	External    bool
	ThunkTarget *Function // non-nil when this function only forwards a call
	Prototype   string    // platform's raw prototype text, no trailing semicolon
	Return      *Type
	Params      []*Type
}

// HasTag reports whether the function carries the named tag.
func (f *Function) HasTag(name string) bool {
	for _, t := range f.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Global is a data symbol referenced from decompiled code. When
// FunctionSymbol is set the symbol at Addr resolves to code and the
// declaration emitted is a function prototype, not a variable.
type Global struct {
	Name           string
	Addr           Address
	Type           *Type
	FunctionSymbol bool
}

// Equate is a named constant extracted from the binary.
type Equate struct {
	Name  string
	Value string
}

// Program is the loaded host program: function list, type database,
// equate table, and tag registry.
type Program struct {
	Name      string
	Functions []*Function // sorted by Entry
	Types     []*Type     // full type database in enumeration order
	Equates   []Equate

	byEntry map[Address]*Function
	tags    map[string]bool
}

// New builds a Program, sorting functions by entry address and
// indexing the tag registry.
func New(name string, funcs []*Function, types []*Type, equates []Equate) *Program {
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Entry < funcs[j].Entry })
	p := &Program{
		Name:      name,
		Functions: funcs,
		Types:     types,
		Equates:   equates,
		byEntry:   make(map[Address]*Function, len(funcs)),
		tags:      make(map[string]bool),
	}
	for _, f := range funcs {
		p.byEntry[f.Entry] = f
		for _, t := range f.Tags {
			p.tags[t] = true
		}
	}
	return p
}

// FunctionAt returns the function whose entry point is addr, or nil.
func (p *Program) FunctionAt(addr Address) *Function { return p.byEntry[addr] }

// HasTag reports whether any function in the program carries the tag.
func (p *Program) HasTag(name string) bool { return p.tags[name] }

// FunctionsIn returns the functions whose entry point lies in any of
// the given ranges, in address order. Empty ranges means all functions.
func (p *Program) FunctionsIn(ranges []AddressRange) []*Function {
	if len(ranges) == 0 {
		out := make([]*Function, len(p.Functions))
		copy(out, p.Functions)
		return out
	}
	var out []*Function
	for _, f := range p.Functions {
		for _, r := range ranges {
			if r.Contains(f.Entry) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
