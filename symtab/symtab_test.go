package symtab

import "testing"

func TestAddLookup(t *testing.T) {
	tab := New()
	tab.Add("loop", 4)
	addr, ok := tab.Lookup("loop")
	if !ok || addr != 4 {
		t.Fatalf("Lookup(loop) = (%d,%v), want (4,true)", addr, ok)
	}
	if _, ok := tab.Lookup("missing"); ok {
		t.Error("Lookup(missing) should report not found")
	}
}

func TestDefined(t *testing.T) {
	tab := New()
	if tab.Defined("x") {
		t.Error("Defined(x) should be false before Add")
	}
	tab.Add("x", 0)
	if !tab.Defined("x") {
		t.Error("Defined(x) should be true after Add")
	}
}

func TestAddOverwrites(t *testing.T) {
	tab := New()
	tab.Add("x", 1)
	tab.Add("x", 2)
	addr, _ := tab.Lookup("x")
	if addr != 2 {
		t.Errorf("second Add did not overwrite: got %d, want 2", addr)
	}
}
