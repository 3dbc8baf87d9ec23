// Package oracle wraps the external language-model call used by the
// introduce-multistage rule. It is treated as a black box behind a single
// narrow method so any concrete client, including a no-op test double,
// plugs in without the rule engine knowing the difference.
package oracle

import "context"

// ScriptInvocation is one package-manager-script call the multistage rule
// found in the original recipe, paired with the script's own command text
// so the oracle can reason about what the command actually does.
type ScriptInvocation struct {
	Command string // the full shell command that invoked the script, e.g. "npm run build"
	Script  string // the script's own command text, e.g. "babel . -d dist"
}

// Oracle rewrites a single-stage recipe into a multi-stage one.
type Oracle interface {
	// AddMultistage returns replacement recipe text, or an error if the
	// call itself failed (transport, HTTP status, timeout). It does not
	// validate that the returned text is a well-formed, multi-stage
	// recipe — that is the calling rule's job.
	AddMultistage(ctx context.Context, recipeText string, scripts []ScriptInvocation) (string, error)
}
