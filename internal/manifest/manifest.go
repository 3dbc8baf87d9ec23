// Package manifest wraps a project's package.json as a read-only key/value
// document. It exposes only the one lookup the rule engine needs — a
// script's command text by name — and keeps the original bytes untouched so
// the orchestrator can echo them back verbatim when nothing about the
// manifest changed.
package manifest

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/cruciblehq/imgshrink/internal/errs"
)

// ErrNotObject is returned by Parse when the manifest's top-level JSON value
// is not an object.
var ErrNotObject = errors.New("manifest: top-level value is not an object")

// Manifest is a read-only view over a package.json document.
type Manifest struct {
	raw []byte
}

// Parse validates that data is a JSON object and wraps it as a Manifest. An
// empty byte slice is not valid JSON and is rejected with ErrNotObject;
// callers that have no manifest simply never call Parse.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, errs.Wrapf(ErrNotObject, "invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotObject
	}
	return &Manifest{raw: data}, nil
}

// Script returns the command text defined under scripts.<name>, and whether
// it was present at all.
func (m *Manifest) Script(name string) (string, bool) {
	result := gjson.GetBytes(m.raw, "scripts."+gjson.Escape(name))
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

// Raw returns the manifest's original bytes, unmodified.
func (m *Manifest) Raw() []byte {
	return m.raw
}
