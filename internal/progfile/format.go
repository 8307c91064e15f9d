// Package progfile loads a program database file: the JSON snapshot of
// functions, types, globals, equates, and recorded decompilation
// results exported from the host analysis platform.
package progfile

// File is the top-level program database document.
type File struct {
	Name      string     `json:"name"`
	Types     []TypeRec  `json:"types,omitempty"`
	Functions []FuncRec  `json:"functions"`
	Globals   []GlobalRec `json:"globals,omitempty"`
	Equates   []EquateRec `json:"equates,omitempty"`
}

// TypeRec is one type node; references are by id.
type TypeRec struct {
	ID      string      `json:"id"`
	Kind    string      `json:"kind"` // leaf, enum, pointer, array, typedef, struct, union, funcdef
	Name    string      `json:"name,omitempty"`
	Base    string      `json:"base,omitempty"` // pointer/array/typedef
	Len     int         `json:"len,omitempty"`  // array
	Members []MemberRec `json:"members,omitempty"`
	Return  string      `json:"return,omitempty"`
	Params  []string    `json:"params,omitempty"`
	Values  []EnumRec   `json:"values,omitempty"` // enum
}

// MemberRec is one composite member.
type MemberRec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EnumRec is one enum constant.
type EnumRec struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// FuncRec is one function entry.
type FuncRec struct {
	Addr      string        `json:"addr"`
	Name      string        `json:"name"`
	Tags      []string      `json:"tags,omitempty"`
	External  bool          `json:"external,omitempty"`
	ThunkOf   string        `json:"thunk_of,omitempty"`
	Prototype string        `json:"prototype,omitempty"`
	Return    string        `json:"return,omitempty"`
	Params    []string      `json:"params,omitempty"`
	Decompile *DecompileRec `json:"decompile,omitempty"`
}

// DecompileRec is the recorded decompilation result for one function.
type DecompileRec struct {
	Error       string   `json:"error,omitempty"`
	Signature   string   `json:"signature,omitempty"`
	Body        string   `json:"body,omitempty"`
	Globals     []string `json:"globals,omitempty"`      // global ids
	Callees     []string `json:"callees,omitempty"`      // function addrs
	MarkupTypes []string `json:"markup_types,omitempty"` // type ids
}

// GlobalRec is one referenced global symbol.
type GlobalRec struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Addr           string `json:"addr"`
	Type           string `json:"type,omitempty"`
	FunctionSymbol bool   `json:"function_symbol,omitempty"`
}

// EquateRec is one named constant.
type EquateRec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
