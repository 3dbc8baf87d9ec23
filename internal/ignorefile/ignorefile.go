// Package ignorefile wraps a .dockerignore document as plain text plus the
// three operations the seed-ignore rule needs: existence, empty-creation,
// and set-membership append.
package ignorefile

import "strings"

// IgnoreFile is a read/append view over a .dockerignore file's contents.
// Whether the file exists is recorded separately from its contents, so an
// absent file and an empty one are told apart by Exists, not by raw.
type IgnoreFile struct {
	raw     []byte
	present bool
}

// New wraps existing .dockerignore contents. Pass New(nil, false) to model
// a file that was never found on disk.
func New(contents []byte, present bool) *IgnoreFile {
	return &IgnoreFile{raw: contents, present: present}
}

// Exists reports whether the file was present on disk.
func (f *IgnoreFile) Exists() bool {
	return f.present
}

// Create initializes an absent file to empty contents in place.
func (f *IgnoreFile) Create() {
	f.raw = []byte{}
	f.present = true
}

// AddIfAbsent appends each entry not already present as its own line,
// entries already present (matched against trimmed existing lines) are
// left untouched. Entries are appended in a fixed order for deterministic
// output regardless of set iteration order.
func (f *IgnoreFile) AddIfAbsent(entries []string) {
	existing := make(map[string]bool)
	for _, line := range strings.Split(string(f.raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			existing[line] = true
		}
	}

	var b strings.Builder
	b.Write(f.raw)
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}

	for _, entry := range entries {
		if existing[entry] {
			continue
		}
		b.WriteString(entry)
		b.WriteByte('\n')
		existing[entry] = true
	}

	f.raw = []byte(b.String())
}

// Raw returns the file's current contents.
func (f *IgnoreFile) Raw() []byte {
	return f.raw
}
