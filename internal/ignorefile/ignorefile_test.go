package ignorefile

import "testing"

func TestCreateOnAbsent(t *testing.T) {
	f := New(nil, false)
	if f.Exists() {
		t.Fatal("new ignore file reports present")
	}
	f.Create()
	if !f.Exists() {
		t.Fatal("Create() did not mark the file present")
	}
	if len(f.Raw()) != 0 {
		t.Errorf("Raw() after Create() = %q, want empty", f.Raw())
	}
}

func TestAddIfAbsentSeedsEntries(t *testing.T) {
	f := New(nil, false)
	f.Create()
	f.AddIfAbsent([]string{"node_modules", "npm-debug.log", ".git"})

	for _, want := range []string{"node_modules", "npm-debug.log", ".git"} {
		if !containsLine(f.Raw(), want) {
			t.Errorf("Raw() missing seeded entry %q: %s", want, f.Raw())
		}
	}
}

func TestAddIfAbsentIsIdempotent(t *testing.T) {
	f := New([]byte("node_modules\n.git\n"), true)
	f.AddIfAbsent([]string{"node_modules", ".git", "npm-debug.log"})
	first := string(f.Raw())

	f.AddIfAbsent([]string{"node_modules", ".git", "npm-debug.log"})
	second := string(f.Raw())

	if first != second {
		t.Errorf("AddIfAbsent() was not idempotent:\n1: %q\n2: %q", first, second)
	}
}

func TestAddIfAbsentPreservesExistingEntries(t *testing.T) {
	f := New([]byte("dist\n"), true)
	f.AddIfAbsent([]string{"node_modules"})
	if !containsLine(f.Raw(), "dist") {
		t.Errorf("existing entry lost: %s", f.Raw())
	}
	if !containsLine(f.Raw(), "node_modules") {
		t.Errorf("new entry not added: %s", f.Raw())
	}
}

func containsLine(raw []byte, want string) bool {
	text := string(raw)
	for _, line := range splitLines(text) {
		if line == want {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
