package dockerfile

import (
	"strconv"
	"strings"
)

// LayerKind discriminates the tagged-variant Layer types the rules
// introspect.
type LayerKind int

const (
	KindOther LayerKind = iota
	KindEnv
	KindCopy
	KindRun
	KindLabel
)

func (k LayerKind) String() string {
	switch k {
	case KindEnv:
		return "Env"
	case KindCopy:
		return "Copy"
	case KindRun:
		return "Run"
	case KindLabel:
		return "Label"
	default:
		return "Other"
	}
}

// Form distinguishes a RUN (or CMD/ENTRYPOINT) layer's invocation shape.
type Form int

const (
	FormShell Form = iota
	FormExec
)

// EnvVar is one assignment inside an Env layer.
type EnvVar struct {
	Key   string
	Value string
}

// LabelPair is one key/value pair inside a Label layer.
type LabelPair struct {
	Key   string
	Value string
}

// CopyData holds a Copy layer's sources, destination and optional --from.
type CopyData struct {
	Sources []string
	Dest    string
	From    string // empty when the flag is absent
}

// RunData holds a Run layer's invocation form and command chain. Operators
// has one fewer entry than Commands: Operators[i] sits between Commands[i]
// and Commands[i+1].
type RunData struct {
	Form      Form
	Commands  []ShellCommand
	Operators []string
}

// Layer is a single instruction inside a Stage (never FROM; that opens the
// Stage itself). It is a read-only view: mutation only ever happens through
// Recipe's write methods, which replace the owning Stage's layer slice.
type Layer struct {
	recipe     *Recipe
	stageIndex int

	index   int
	line    int
	kind    LayerKind
	command string // uppercased instruction name, e.g. "RUN"
	flags   map[string]any
	other   string // generic re-rendering for KindOther layers, whose structure we don't model

	env   []EnvVar
	label []LabelPair
	copy  CopyData
	run   RunData
}

// Index returns the layer's 0-based position within its parent stage.
func (l Layer) Index() int { return l.index }

// Line returns the first source line the layer was parsed from.
func (l Layer) Line() int { return l.line }

// Kind returns which tagged variant this layer is.
func (l Layer) Kind() LayerKind { return l.kind }

// Command returns the uppercased instruction name (e.g. "RUN", "COPY").
func (l Layer) Command() string { return l.command }

// Flags returns the layer's parsed "--k[=v]" flags. Nil when there are none.
func (l Layer) Flags() map[string]any { return l.flags }

// Stage returns the parent stage. Non-owning: resolved by index through the
// Recipe each time, so it never goes stale across unrelated writes but
// should not be retained across a write to this layer's own stage.
func (l Layer) Stage() Stage { return l.recipe.stages[l.stageIndex] }

// Env returns the ordered variable assignments of an Env layer. Empty for
// any other kind.
func (l Layer) Env() []EnvVar { return l.env }

// Label returns the ordered key/value pairs of a Label layer. Empty for any
// other kind.
func (l Layer) Label() []LabelPair { return l.label }

// Copy returns a Copy layer's sources/destination/from. Zero value for any
// other kind.
func (l Layer) Copy() CopyData { return l.copy }

// Run returns a Run layer's form and shell-command chain. Zero value for
// any other kind.
func (l Layer) Run() RunData { return l.run }

// Text renders the layer's current instruction text (without a trailing
// newline), deterministically from its structured fields. Used by the
// flattener; always reflects the layer's current state, mutated or not —
// rebuilt from command + flags + value uniformly rather than only after a
// mutation.
func (l Layer) Text() string {
	switch l.kind {
	case KindEnv:
		return renderAssignments(l.command, l.flags, envPairs(l.env))
	case KindLabel:
		return renderAssignments(l.command, l.flags, labelPairs(l.label))
	case KindCopy:
		return renderCopy(l.flags, l.copy)
	case KindRun:
		return renderRun(l.flags, l.run)
	default:
		return l.other
	}
}

func envPairs(vars []EnvVar) []string {
	out := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		out = append(out, v.Key, v.Value)
	}
	return out
}

func labelPairs(pairs []LabelPair) []string {
	out := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out, p.Key, p.Value)
	}
	return out
}

// renderAssignments renders an ENV/LABEL layer as "CMD [flags] k=v k2=v2 …".
func renderAssignments(command string, flags map[string]any, kv []string) string {
	parts := []string{command}
	parts = append(parts, renderFlags(flags)...)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, kv[i]+"="+quoteIfNeeded(kv[i+1]))
	}
	return strings.Join(parts, " ")
}

func renderCopy(flags map[string]any, c CopyData) string {
	parts := []string{"COPY"}
	parts = append(parts, renderFlags(flags)...)
	parts = append(parts, c.Sources...)
	parts = append(parts, c.Dest)
	return strings.Join(parts, " ")
}

func renderRun(flags map[string]any, r RunData) string {
	parts := []string{"RUN"}
	parts = append(parts, renderFlags(flags)...)

	if r.Form == FormExec && len(r.Commands) == 1 {
		words := splitWords(r.Commands[0].Text())
		encoded := make([]string, len(words))
		for i, w := range words {
			encoded[i] = strconv.Quote(w)
		}
		parts = append(parts, "["+strings.Join(encoded, ", ")+"]")
		return strings.Join(parts, " ")
	}

	var chain []string
	for i, c := range r.Commands {
		chain = append(chain, c.Text())
		if i < len(r.Operators) {
			chain = append(chain, r.Operators[i])
		}
	}
	parts = append(parts, joinChain(chain))
	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'$") {
		return strconv.Quote(s)
	}
	return s
}
