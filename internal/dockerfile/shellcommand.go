package dockerfile

import "strings"

// ShellCommand is one command in a Run layer's chain (split on &&, ||, ;,
// | and &). Like Layer and Stage, it is a read-only view resolved through
// the owning Recipe.
type ShellCommand struct {
	recipe     *Recipe
	stageIndex int
	layerIndex int

	index int
	line  int
	form  Form
	text  string // this command's own text, excluding chain operators
}

// Index returns the command's 0-based position within its run-layer.
func (sc ShellCommand) Index() int { return sc.index }

// Line returns the command's source line.
func (sc ShellCommand) Line() int { return sc.line }

// Form returns whether the parent layer used Shell or Exec form.
func (sc ShellCommand) Form() Form { return sc.form }

// Text returns the command's raw text, e.g. "npm ci --omit=dev".
func (sc ShellCommand) Text() string { return sc.text }

// Layer returns the parent Run layer.
func (sc ShellCommand) Layer() Layer {
	return sc.recipe.stages[sc.stageIndex].layers[sc.layerIndex]
}

// words lexes the command text into shell words, used by every derived
// view below.
func (sc ShellCommand) words() []string { return splitWords(sc.text) }

// Program returns the first token, e.g. "npm" in "npm install".
func (sc ShellCommand) Program() string {
	w := sc.words()
	if len(w) == 0 {
		return ""
	}
	return w[0]
}

// Args returns the tokens after the program, excluding flags.
func (sc ShellCommand) Args() []string {
	w := sc.words()
	if len(w) == 0 {
		return nil
	}
	var args []string
	for _, tok := range w[1:] {
		if strings.HasPrefix(tok, "--") {
			continue
		}
		args = append(args, tok)
	}
	return args
}

// Subcommand returns Args()[0], or "" when there are no positional args.
func (sc ShellCommand) Subcommand() string {
	args := sc.Args()
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Options returns the command's parsed "--k[=v]" flags, per §4.1's flag
// grammar (bare --k -> true; --k=true/false -> bool; --k=v -> string).
func (sc ShellCommand) Options() map[string]any {
	w := sc.words()
	var raw []string
	for _, tok := range w {
		if strings.HasPrefix(tok, "--") {
			raw = append(raw, tok)
		}
	}
	return parseFlags(raw)
}
