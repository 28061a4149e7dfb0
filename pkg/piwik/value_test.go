package piwik

import (
	"reflect"
	"testing"
)

func TestValueScalarAndList(t *testing.T) {
	if got := Int(42).Scalar(); got != "42" {
		t.Fatalf("Int scalar = %q", got)
	}
	if got := Ints(4, 5, 6).Join(","); got != "4,5,6" {
		t.Fatalf("Ints join = %q", got)
	}
	if got := String("x").Join(","); got != "x" {
		t.Fatalf("scalar join = %q", got)
	}
	if got := List("a", "b").List(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("list = %v", got)
	}
	if !List("a").IsList() || String("a").IsList() {
		t.Fatalf("IsList misreports the variant")
	}
	if got := List("first", "second").Scalar(); got != "first" {
		t.Fatalf("list scalar = %q, want first element", got)
	}
}

func TestValueZero(t *testing.T) {
	var v Value
	if !v.IsZero() {
		t.Fatalf("zero Value should be absent")
	}
	if List().IsZero() {
		t.Fatalf("empty list is present, not absent")
	}
}

func TestValueTruthiness(t *testing.T) {
	truthy := []Value{Bool(true), String("1"), String("yes"), Int(2), String("true")}
	for _, v := range truthy {
		if !v.True() {
			t.Fatalf("%#v should be truthy", v)
		}
	}
	falsy := []Value{{}, Bool(false), String("0"), String("false"), String("no"), String(" ")}
	for _, v := range falsy {
		if v.True() {
			t.Fatalf("%#v should be falsy", v)
		}
	}
}

func TestParamsCloneIsIndependent(t *testing.T) {
	orig := Params{"a": Int(1)}
	cp := orig.Clone()
	delete(cp, "a")
	if _, ok := orig["a"]; !ok {
		t.Fatalf("mutating the clone must not touch the original")
	}
}
