package assemble

import (
	"strings"
	"testing"

	"cexport/internal/program"
)

func TestBannerStyles(t *testing.T) {
	cpp := Banner("DATA TYPES", "desc", CPPStyle)
	if !strings.Contains(cpp, "// DATA TYPES") {
		t.Errorf("C++ banner wrong:\n%s", cpp)
	}
	if strings.Contains(cpp, "/*") {
		t.Errorf("C++ banner contains block comment:\n%s", cpp)
	}

	c := Banner("DATA TYPES", "desc", CStyle)
	if !strings.Contains(c, "/* DATA TYPES") || !strings.Contains(c, "*/") {
		t.Errorf("C banner wrong:\n%s", c)
	}
}

func TestBuiltinTypedefs(t *testing.T) {
	got := BuiltinTypedefs()
	for _, want := range []string{
		"typedef unsigned long long unkbyte9;",
		"typedef unsigned long long unkuint16;",
		"typedef long long unkint12;",
		"typedef float unkfloat1;",
		"typedef long double unkfloat16;",
		"typedef void BADSPACEBASE;",
		"typedef void code;",
		"typedef unsigned char bool;",
		"typedef unsigned int uint;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("builtins missing %q", want)
		}
	}
}

func TestRenderTypesOrderAndForwardDecls(t *testing.T) {
	intT := &program.Type{Kind: program.Leaf, Name: "int"}
	inner := &program.Type{Kind: program.Composite, Name: "inner",
		Members: []program.Member{{Name: "x", Type: intT}}}
	outer := &program.Type{Kind: program.Composite, Name: "a_outer",
		Members: []program.Member{{Name: "in", Type: inner}}}

	got := RenderTypes([]*program.Type{outer, inner, intT})

	fwdOuter := strings.Index(got, "typedef struct a_outer a_outer;")
	fwdInner := strings.Index(got, "typedef struct inner inner;")
	defInner := strings.Index(got, "struct inner {")
	defOuter := strings.Index(got, "struct a_outer {")
	if fwdOuter < 0 || fwdInner < 0 || defInner < 0 || defOuter < 0 {
		t.Fatalf("missing declarations:\n%s", got)
	}
	if !(fwdOuter < defInner && defInner < defOuter) {
		t.Errorf("by-value dependency not defined before container:\n%s", got)
	}
}

func TestRenderTypesSelfReferential(t *testing.T) {
	node := &program.Type{Kind: program.Composite, Name: "node"}
	node.Members = []program.Member{
		{Name: "next", Type: &program.Type{Kind: program.Pointer, Base: node}},
	}
	got := RenderTypes([]*program.Type{node})
	if strings.Count(got, "struct node {") != 1 {
		t.Errorf("node defined %d times:\n%s", strings.Count(got, "struct node {"), got)
	}
	if !strings.Contains(got, "node *next;") {
		t.Errorf("pointer member wrong:\n%s", got)
	}
}

func TestRenderTypesTypedefAndEnum(t *testing.T) {
	intT := &program.Type{Kind: program.Leaf, Name: "int"}
	arr := &program.Type{Kind: program.Array, Base: intT, Len: 4}
	td := &program.Type{Kind: program.Typedef, Name: "quad_t", Base: arr}
	en := &program.Type{Kind: program.Leaf, Name: "color", Enum: []program.EnumValue{
		{Name: "RED", Value: 0}, {Name: "BLUE", Value: 1},
	}}
	fd := &program.Type{Kind: program.FuncDef, Name: "cb_t", Return: intT,
		Params: []*program.Type{{Kind: program.Pointer, Base: intT}}}

	got := RenderTypes([]*program.Type{td, en, fd, intT, arr})
	for _, want := range []string{
		"typedef int quad_t[4];",
		"typedef enum color {",
		"    RED = 0,",
		"    BLUE = 1",
		"} color;",
		"typedef int (*cb_t)(int *);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered types missing %q:\n%s", want, got)
		}
	}
}

func TestBuildSplitUnits(t *testing.T) {
	c := Content{
		Builtins:  "typedef unsigned int uint;\n",
		Equates:   []program.Equate{{Name: "MAX", Value: "0x10"}},
		Types:     "typedef int quad_t[4];\n",
		FuncDecls: []string{"int main(void);"},
		Globals:   []string{"int counter;"},
		Bodies:    []string{"int main(void)\n{\n  return 0;\n}\n"},
	}
	header, impl := Build(c, CPPStyle, true, true, "prog.h")

	for _, want := range []string{"#define MAX 0x10", "int main(void);", "int counter;", "quad_t"} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(header, "return 0;") {
		t.Error("header contains a function body")
	}
	if !strings.HasPrefix(impl, "#include \"prog.h\"\n") {
		t.Errorf("impl does not include header:\n%s", impl[:60])
	}
	if !strings.Contains(impl, "return 0;") {
		t.Error("impl missing the body")
	}
	if strings.Contains(impl, "#define MAX") {
		t.Error("impl duplicates the equates section")
	}
}

func TestBuildImplOnlySectionOrder(t *testing.T) {
	c := Content{
		Builtins:  "typedef unsigned int uint;\n",
		Equates:   []program.Equate{{Name: "MAX", Value: "1"}},
		Types:     "typedef int t;\n",
		FuncDecls: []string{"void f(void);"},
		Globals:   []string{"int g;"},
		Bodies:    []string{"void f(void) {}\n"},
	}
	_, impl := Build(c, CStyle, false, true, "")

	idx := []int{
		strings.Index(impl, "typedef unsigned int uint;"),
		strings.Index(impl, "#define MAX 1"),
		strings.Index(impl, "typedef int t;"),
		strings.Index(impl, "void f(void);"),
		strings.Index(impl, "int g;"),
		strings.Index(impl, "void f(void) {}"),
	}
	for i, v := range idx {
		if v < 0 {
			t.Fatalf("section %d missing:\n%s", i, impl)
		}
		if i > 0 && idx[i-1] >= v {
			t.Errorf("section %d out of order (%d >= %d)", i, idx[i-1], v)
		}
	}
	if !strings.Contains(impl, "/* EQUATES / DEFINES") {
		t.Error("C-style run did not use block-comment banners")
	}
}

func TestBuildIdempotent(t *testing.T) {
	c := Content{FuncDecls: []string{"void a(void);", "void b(void);"}, Bodies: []string{"void a(void) {}\n"}}
	_, i1 := Build(c, CPPStyle, false, true, "")
	_, i2 := Build(c, CPPStyle, false, true, "")
	if i1 != i2 {
		t.Error("assembly not byte-identical across runs")
	}
}
