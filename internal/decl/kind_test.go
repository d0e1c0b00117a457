package decl

import "testing"

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("class"); ok {
		t.Error("unexpected kind parsed")
	}
	if Kind(200).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestScoped(t *testing.T) {
	for _, k := range Kinds() {
		want := k == StructFieldName || k == EnumConstant
		if k.Scoped() != want {
			t.Errorf("%v.Scoped() = %v", k, k.Scoped())
		}
	}
}
