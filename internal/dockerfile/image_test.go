package dockerfile

import "testing"

func TestImageFullName(t *testing.T) {
	cases := map[string]string{
		"foo:bar": "foo:bar",
		"foo":     "foo:latest",
		"node:20": "node:20",
	}
	for in, want := range cases {
		if got := NewImage(in).FullName(); got != want {
			t.Errorf("NewImage(%q).FullName() = %q, want %q", in, got, want)
		}
	}
}

func TestImageIsLight(t *testing.T) {
	cases := map[string]bool{
		"node:20":        false,
		"node:20-slim":   true,
		"node:alpine":    true,
		"node:latest":    false,
		"node:20-alpine": true,
	}
	for in, want := range cases {
		if got := NewImage(in).IsLight(); got != want {
			t.Errorf("NewImage(%q).IsLight() = %v, want %v", in, got, want)
		}
	}
}

func TestImageLightEquivalentTag(t *testing.T) {
	cases := map[string]string{
		"node":            LightSuffix,
		"node:latest":     LightSuffix,
		"node:22.9.0":     "22.9.0-" + LightSuffix,
		"node:20-alpine":  "20-alpine",
		"node:bullseye-slim": "bullseye-slim",
	}
	for in, want := range cases {
		if got := NewImage(in).LightEquivalentTag(); got != want {
			t.Errorf("NewImage(%q).LightEquivalentTag() = %q, want %q", in, got, want)
		}
	}
}
