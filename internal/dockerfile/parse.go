package dockerfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"

	"github.com/cruciblehq/imgshrink/internal/errs"
)

// knownInstructions is the recipe language's fixed instruction set. An
// unknown command inside a stage is a validation error only if its name
// is not in this set.
var knownInstructions = map[string]bool{
	"ADD": true, "ARG": true, "CMD": true, "COPY": true, "ENTRYPOINT": true,
	"ENV": true, "EXPOSE": true, "FROM": true, "HEALTHCHECK": true,
	"LABEL": true, "MAINTAINER": true, "ONBUILD": true, "RUN": true,
	"SHELL": true, "STOPSIGNAL": true, "USER": true, "VOLUME": true,
	"WORKDIR": true,
}

// Parse builds a Recipe from recipe text by walking the flat instruction
// sequence, opening a new Stage on each FROM, and turning every other
// instruction into a Layer of the owning stage.
func Parse(text []byte) (*Recipe, error) {
	if len(strings.TrimSpace(string(text))) == 0 {
		return nil, ErrEmpty
	}

	result, err := parser.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, errs.Wrap(ErrParse, err)
	}

	r := &Recipe{}

	nodes := result.AST.Children

	firstStage := 0
	for firstStage < len(nodes) {
		cmd := strings.ToUpper(nodes[firstStage].Value)
		if cmd == "FROM" {
			break
		}
		if cmd == "ARG" {
			r.globalArgs = append(r.globalArgs, renderNode(nodes[firstStage]))
			firstStage++
			continue
		}
		return nil, fmt.Errorf("%w: recipe must begin with FROM or ARG, found %s", ErrParse, cmd)
	}
	if firstStage >= len(nodes) {
		return nil, fmt.Errorf("%w: recipe has no FROM instruction", ErrParse)
	}

	stageIndex := 0
	i := firstStage
	for i < len(nodes) {
		cmd := strings.ToUpper(nodes[i].Value)
		if cmd != "FROM" {
			return nil, fmt.Errorf("%w: expected FROM, found %s", ErrInvariant, cmd)
		}

		stage, next, err := buildStage(r, nodes, i, stageIndex)
		if err != nil {
			return nil, err
		}
		r.stages = append(r.stages, stage)
		stageIndex++
		i = next
	}

	r.raw = Flatten(r)
	return r, nil
}

// buildStage constructs the stage opened by nodes[start] (a FROM node) and
// consumes every following node up to (not including) the next FROM.
func buildStage(r *Recipe, nodes []*parser.Node, start, index int) (Stage, int, error) {
	from := nodes[start]
	args := argsOf(from)
	if len(args) == 0 {
		return Stage{}, 0, fmt.Errorf("%w: FROM with no base image at line %d", ErrParse, from.StartLine)
	}

	stage := Stage{
		recipe:    r,
		index:     index,
		baseImage: NewImage(args[0]),
		line:      from.StartLine,
	}
	if len(args) >= 3 && strings.EqualFold(args[1], "AS") {
		stage.name = args[2]
	}

	i := start + 1
	layerIndex := 0
	for i < len(nodes) {
		cmd := strings.ToUpper(nodes[i].Value)
		if cmd == "FROM" {
			break
		}
		if !knownInstructions[cmd] {
			return Stage{}, 0, fmt.Errorf("%w: %s is not a recognized instruction", ErrValidation, nodes[i].Value)
		}

		layer := buildLayer(r, index, layerIndex, nodes[i])
		stage.layers = append(stage.layers, layer)
		layerIndex++
		i++
	}

	return stage, i, nil
}

// buildLayer builds a single Layer from one instruction node.
func buildLayer(r *Recipe, stageIndex, layerIndex int, node *parser.Node) Layer {
	cmd := strings.ToUpper(node.Value)
	flags := parseFlags(node.Flags)

	l := Layer{
		recipe:     r,
		stageIndex: stageIndex,
		index:      layerIndex,
		line:       node.StartLine,
		command:    cmd,
		flags:      flags,
	}

	switch cmd {
	case "ENV":
		l.kind = KindEnv
		l.env = pairsToEnv(argsOf(node))
	case "LABEL":
		l.kind = KindLabel
		l.label = pairsToLabel(argsOf(node))
	case "COPY":
		l.kind = KindCopy
		l.copy = buildCopy(flags, argsOf(node))
	case "RUN":
		l.kind = KindRun
		l.run = buildRun(r, stageIndex, layerIndex, node)
	default:
		l.kind = KindOther
		l.other = renderNode(node)
	}

	return l
}

func buildCopy(flags map[string]any, args []string) CopyData {
	c := CopyData{}
	if from, ok := flags["from"].(string); ok {
		c.From = from
	}
	if len(args) == 0 {
		return c
	}
	c.Sources = args[:len(args)-1]
	c.Dest = args[len(args)-1]
	return c
}

func buildRun(r *Recipe, stageIndex, layerIndex int, node *parser.Node) RunData {
	args := argsOf(node)

	if node.Attributes["json"] {
		// Exec form: one command, each token already split by the parser.
		return RunData{
			Form: FormExec,
			Commands: []ShellCommand{{
				recipe: r, stageIndex: stageIndex, layerIndex: layerIndex,
				index: 0, line: node.StartLine, form: FormExec,
				text: strings.Join(args, " "),
			}},
		}
	}

	var shellText string
	if len(args) > 0 {
		shellText = args[0]
	}

	parts := splitChain(shellText)
	if parts == nil {
		// Non-list/command parse: no recognisable commands.
		return RunData{Form: FormShell}
	}

	run := RunData{Form: FormShell}
	cmdIndex := 0
	for _, p := range parts {
		if isChainOperator(p) {
			run.Operators = append(run.Operators, p)
			continue
		}
		run.Commands = append(run.Commands, ShellCommand{
			recipe: r, stageIndex: stageIndex, layerIndex: layerIndex,
			index: cmdIndex, line: node.StartLine, form: FormShell,
			text: p,
		})
		cmdIndex++
	}
	return run
}

func isChainOperator(s string) bool {
	switch s {
	case "&&", "||", "|", "|&", ";", "&":
		return true
	default:
		return false
	}
}

func pairsToEnv(args []string) []EnvVar {
	var out []EnvVar
	for i := 0; i+1 < len(args); i += 2 {
		out = append(out, EnvVar{Key: args[i], Value: args[i+1]})
	}
	return out
}

func pairsToLabel(args []string) []LabelPair {
	var out []LabelPair
	for i := 0; i+1 < len(args); i += 2 {
		out = append(out, LabelPair{Key: args[i], Value: args[i+1]})
	}
	return out
}

// argsOf walks n's Next chain, collecting each node's Value. This mirrors
// the helper of the same shape in the tilt Dockerfile AST (see DESIGN.md).
func argsOf(n *parser.Node) []string {
	var out []string
	for node := n.Next; node != nil; node = node.Next {
		out = append(out, node.Value)
	}
	return out
}

// renderNode renders an instruction node generically, for the layer kinds
// (CMD, ENTRYPOINT, WORKDIR, EXPOSE, USER, VOLUME, ARG, …) that imgshrink's
// rules never introspect.
func renderNode(n *parser.Node) string {
	cmd := strings.ToUpper(n.Value)
	args := argsOf(n)

	parts := []string{cmd}
	parts = append(parts, n.Flags...)

	if n.Attributes["json"] {
		encoded := make([]string, len(args))
		for i, a := range args {
			encoded[i] = `"` + a + `"`
		}
		parts = append(parts, "["+strings.Join(encoded, ", ")+"]")
		return strings.Join(parts, " ")
	}

	parts = append(parts, args...)
	return strings.Join(parts, " ")
}
