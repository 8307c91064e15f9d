package program

import "testing"

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"0x1000", 0x1000, false},
		{"1000", 0x1000, false},
		{"0Xdeadbeef", 0xdeadbeef, false},
		{"  0x20 ", 0x20, false},
		{"", 0, true},
		{"0x", 0, true},
		{"xyz", 0, true},
	}
	for _, c := range cases {
		got, err := ParseAddress(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseAddress(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("ParseAddress(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseRanges(t *testing.T) {
	ranges, warns := ParseRanges("0x1000-0x2000, 0x3000")
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, want 2", len(ranges))
	}
	if !ranges[0].Contains(0x1500) || ranges[0].Contains(0x2001) {
		t.Errorf("range 0 = %v, want [0x1000, 0x2000]", ranges[0])
	}
	if ranges[1].Start != 0x3000 || ranges[1].End != 0x3000 {
		t.Errorf("range 1 = %v, want single 0x3000", ranges[1])
	}
}

func TestParseRangesMalformed(t *testing.T) {
	ranges, warns := ParseRanges("bogus, 0x4000-zzz, 0x10")
	if len(warns) != 2 {
		t.Errorf("got %d warnings, want 2: %v", len(warns), warns)
	}
	if len(ranges) != 1 || ranges[0].Start != 0x10 {
		t.Errorf("ranges = %v, want just 0x10", ranges)
	}
}

func TestParseRangesReversed(t *testing.T) {
	ranges, _ := ParseRanges("0x2000-0x1000")
	if len(ranges) != 1 || ranges[0].Start != 0x1000 || ranges[0].End != 0x2000 {
		t.Errorf("ranges = %v, want normalized [0x1000, 0x2000]", ranges)
	}
}

func TestTypeDisplay(t *testing.T) {
	intT := &Type{Kind: Leaf, Name: "int"}
	charT := &Type{Kind: Leaf, Name: "char"}
	ptr := &Type{Kind: Pointer, Base: charT}
	pptr := &Type{Kind: Pointer, Base: ptr}
	arr := &Type{Kind: Array, Base: intT, Len: 4}
	arrOfPtr := &Type{Kind: Array, Base: ptr, Len: 8}

	cases := []struct {
		t    *Type
		want string
	}{
		{intT, "int"},
		{ptr, "char *"},
		{pptr, "char **"},
		{arr, "int[4]"},
		{arrOfPtr, "char *[8]"},
		{nil, "void"},
	}
	for _, c := range cases {
		if got := c.t.Display(); got != c.want {
			t.Errorf("Display() = %q, want %q", got, c.want)
		}
	}
}

func TestFunctionsIn(t *testing.T) {
	fa := &Function{Entry: 0x1000, Name: "a"}
	fb := &Function{Entry: 0x2000, Name: "b"}
	fc := &Function{Entry: 0x3000, Name: "c"}
	p := New("t", []*Function{fc, fa, fb}, nil, nil)

	all := p.FunctionsIn(nil)
	if len(all) != 3 || all[0] != fa || all[2] != fc {
		t.Fatalf("FunctionsIn(nil) not in address order: %v", all)
	}

	got := p.FunctionsIn([]AddressRange{{Start: 0x1800, End: 0x2800}})
	if len(got) != 1 || got[0] != fb {
		t.Errorf("FunctionsIn(range) = %v, want [b]", got)
	}

	if p.FunctionAt(0x2000) != fb {
		t.Errorf("FunctionAt(0x2000) != b")
	}
}

func TestTagRegistry(t *testing.T) {
	f := &Function{Entry: 1, Name: "f", Tags: []string{"CRYPTO"}}
	p := New("t", []*Function{f}, nil, nil)
	if !p.HasTag("CRYPTO") {
		t.Error("HasTag(CRYPTO) = false, want true")
	}
	if p.HasTag("MISSING") {
		t.Error("HasTag(MISSING) = true, want false")
	}
}
