package symbols

import "testing"

func TestTableLookup(t *testing.T) {
	table := NewTable(
		Symbol{"sinf", 0x30},
		Symbol{"glEnable", 0x10},
		Symbol{"cosf", 0x20},
		Symbol{"malloc", 0x40},
	)

	if table.Len() != 4 {
		t.Fatalf("Len = %d, want 4", table.Len())
	}

	syms := table.Symbols()
	for i := 1; i < len(syms); i++ {
		if syms[i-1].Name >= syms[i].Name {
			t.Fatalf("symbols not sorted: %q before %q", syms[i-1].Name, syms[i].Name)
		}
	}

	tests := []struct {
		name string
		addr uintptr
		ok   bool
	}{
		{"cosf", 0x20, true},
		{"glEnable", 0x10, true},
		{"malloc", 0x40, true},
		{"sinf", 0x30, true},
		{"sin", 0, false},
		{"", 0, false},
		{"zzz", 0, false},
	}
	for _, tt := range tests {
		addr, ok := table.Lookup(tt.name)
		if ok != tt.ok || addr != tt.addr {
			t.Errorf("Lookup(%q) = %x, %v; want %x, %v", tt.name, addr, ok, tt.addr, tt.ok)
		}
	}
}

func TestBuilderDropsZeroAndKeepsLast(t *testing.T) {
	var b Builder
	b.Add("glFoo", 0).Add("glBar", 1).Add("glBar", 2)
	table := b.Build()

	if _, ok := table.Lookup("glFoo"); ok {
		t.Error("zero address symbol should be dropped")
	}
	if addr, _ := table.Lookup("glBar"); addr != 2 {
		t.Errorf("glBar = %d, want 2", addr)
	}
}

func TestStackProbeName(t *testing.T) {
	tests := []struct {
		goos, goarch, want string
	}{
		{"windows", "amd64", ProbeWin64},
		{"windows", "386", ProbeWin32},
		{"linux", "amd64", ""},
		{"darwin", "arm64", ""},
	}
	for _, tt := range tests {
		if got := stackProbeName(tt.goos, tt.goarch); got != tt.want {
			t.Errorf("stackProbeName(%s, %s) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("sinf"); ok {
		t.Error("nil table should resolve nothing")
	}
	if table.Len() != 0 {
		t.Error("nil table should be empty")
	}
}
