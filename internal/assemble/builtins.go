package assemble

import (
	"fmt"
	"strings"
)

// BuiltinTypedefs renders aliases for the hardware-width integer and
// float types the decompiler emits but C cannot express natively
// (unkbyte9..16 and friends), plus the bool and uint conveniences the
// decompiled code assumes.
func BuiltinTypedefs() string {
	var b strings.Builder

	for n := 9; n <= 16; n++ {
		fmt.Fprintf(&b, "typedef unsigned long long unkbyte%d;\n", n)
	}
	b.WriteByte('\n')
	for n := 9; n <= 16; n++ {
		fmt.Fprintf(&b, "typedef unsigned long long unkuint%d;\n", n)
	}
	b.WriteByte('\n')
	for n := 9; n <= 16; n++ {
		fmt.Fprintf(&b, "typedef long long unkint%d;\n", n)
	}
	b.WriteByte('\n')

	for _, d := range []struct {
		name string
		c    string
	}{
		{"unkfloat1", "float"},
		{"unkfloat2", "float"},
		{"unkfloat3", "float"},
		{"unkfloat5", "double"},
		{"unkfloat6", "double"},
		{"unkfloat7", "double"},
		{"unkfloat9", "long double"},
	} {
		fmt.Fprintf(&b, "typedef %s %s;\n", d.c, d.name)
	}
	for n := 11; n <= 16; n++ {
		fmt.Fprintf(&b, "typedef long double unkfloat%d;\n", n)
	}
	b.WriteByte('\n')

	b.WriteString("typedef void BADSPACEBASE;\n")
	b.WriteString("typedef void code;\n")
	b.WriteByte('\n')

	b.WriteString("// C99 lacks bool, define it as byte for C-only output\n")
	b.WriteString("#if !defined(__cplusplus) && !defined(NO_BOOL)\n")
	b.WriteString("typedef unsigned char bool;\n")
	b.WriteString("#endif\n")
	b.WriteByte('\n')

	b.WriteString("typedef unsigned int uint;\n")
	return b.String()
}
