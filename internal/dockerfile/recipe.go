package dockerfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"

	"github.com/cruciblehq/imgshrink/internal/errs"
)

// Recipe is the sole write surface over a build recipe. Stage, Layer and
// ShellCommand are read-only views resolved through it; every write method
// below re-aligns indices and regenerates the canonical text before
// returning.
type Recipe struct {
	stages     []Stage
	globalArgs []string
	raw        []byte
}

// Stages returns the recipe's stages in order.
func (r *Recipe) Stages() []Stage { return r.stages }

// StageCount returns the number of stages.
func (r *Recipe) StageCount() int { return len(r.stages) }

// FinalStage returns the recipe's last (deliverable) stage.
func (r *Recipe) FinalStage() Stage { return r.stages[len(r.stages)-1] }

// StageByName returns the stage whose "AS <name>" alias matches name.
func (r *Recipe) StageByName(name string) (Stage, bool) {
	for _, s := range r.stages {
		if s.name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// GlobalArgs returns the text of ARG instructions preceding the first FROM,
// re-rendered from their parsed instructions.
func (r *Recipe) GlobalArgs() []string { return r.globalArgs }

// Raw returns the canonical textual rendering of the current tree.
func (r *Recipe) Raw() []byte { return r.raw }

// String returns Raw() as a string.
func (r *Recipe) String() string { return string(r.raw) }

// SetStageBaseImage replaces a stage's FROM base image.
func (r *Recipe) SetStageBaseImage(stage Stage, image Image) error {
	if stage.index < 0 || stage.index >= len(r.stages) {
		return fmt.Errorf("%w: stage index %d out of range", ErrInvariant, stage.index)
	}
	r.stages[stage.index].baseImage = image
	r.commit()
	return nil
}

// ReplaceShellCommand replaces a single shell command's text within its
// parent run-layer. newText must be a single command, not a chain.
// Replacing a command in an Exec-form layer collapses it to Shell form
// with this one command (a documented limitation: exec-form chains have
// no separator to reintroduce the other commands around).
func (r *Recipe) ReplaceShellCommand(target ShellCommand, newText string) (ShellCommand, error) {
	layer, err := r.layerAt(target.stageIndex, target.layerIndex)
	if err != nil {
		return ShellCommand{}, err
	}
	if layer.kind != KindRun {
		return ShellCommand{}, fmt.Errorf("%w: shell command's parent layer is not RUN", ErrInvariant)
	}

	if layer.run.Form == FormExec {
		layer.run = RunData{
			Form: FormShell,
			Commands: []ShellCommand{{
				recipe: r, stageIndex: target.stageIndex, layerIndex: target.layerIndex,
				index: 0, line: layer.line, form: FormShell, text: newText,
			}},
		}
	} else {
		if target.index < 0 || target.index >= len(layer.run.Commands) {
			return ShellCommand{}, fmt.Errorf("%w: shell command index %d out of range", ErrInvariant, target.index)
		}
		layer.run.Commands[target.index].text = newText
	}

	r.commit()
	return r.stages[target.stageIndex].layers[target.layerIndex].run.Commands[target.index], nil
}

// AddFlagToShellCommand appends a "--key[=value]" flag to a shell command's
// own text. A false value is a no-op; true appends a bare "--key"; a
// string value appends "--key=value".
func (r *Recipe) AddFlagToShellCommand(target ShellCommand, key string, value any) (ShellCommand, error) {
	switch v := value.(type) {
	case bool:
		if !v {
			return target, nil
		}
		return r.ReplaceShellCommand(target, target.text+" --"+key)
	case string:
		return r.ReplaceShellCommand(target, target.text+" --"+key+"="+v)
	default:
		return ShellCommand{}, fmt.Errorf("%w: flag value must be bool or string", ErrInvariant)
	}
}

// ReplaceLayerWithStatements replaces target with the layers parsed from
// statements. The first new layer takes target's line number and each later
// one the next line after it. An empty statements list is a no-op.
func (r *Recipe) ReplaceLayerWithStatements(target Layer, statements []string) ([]Layer, error) {
	if len(statements) == 0 {
		return nil, nil
	}

	nodes, err := parseStatements(statements)
	if err != nil {
		return nil, err
	}

	stage := &r.stages[target.stageIndex]
	if target.index < 0 || target.index >= len(stage.layers) {
		return nil, fmt.Errorf("%w: layer index %d out of range", ErrInvariant, target.index)
	}

	line := target.line
	newLayers := make([]Layer, len(nodes))
	for i, node := range nodes {
		cmd := strings.ToUpper(node.Value)
		if !knownInstructions[cmd] {
			return nil, fmt.Errorf("%w: %s is not a recognized instruction", ErrValidation, node.Value)
		}
		layer := buildLayer(r, target.stageIndex, target.index+i, node)
		layer.line = line
		newLayers[i] = layer
		line++
	}

	rebuilt := make([]Layer, 0, len(stage.layers)-1+len(newLayers))
	rebuilt = append(rebuilt, stage.layers[:target.index]...)
	rebuilt = append(rebuilt, newLayers...)
	rebuilt = append(rebuilt, stage.layers[target.index+1:]...)
	stage.layers = rebuilt

	r.commit()
	return r.stages[target.stageIndex].layers[target.index : target.index+len(newLayers)], nil
}

// InsertAfterLayer parses statement into a single new layer and inserts it
// immediately after target.
func (r *Recipe) InsertAfterLayer(target Layer, statement string) (Layer, error) {
	nodes, err := parseStatements([]string{statement})
	if err != nil {
		return Layer{}, err
	}
	if len(nodes) != 1 {
		return Layer{}, fmt.Errorf("%w: expected exactly one instruction", ErrValidation)
	}
	cmd := strings.ToUpper(nodes[0].Value)
	if !knownInstructions[cmd] {
		return Layer{}, fmt.Errorf("%w: %s is not a recognized instruction", ErrValidation, nodes[0].Value)
	}

	stage := &r.stages[target.stageIndex]
	if target.index < 0 || target.index >= len(stage.layers) {
		return Layer{}, fmt.Errorf("%w: layer index %d out of range", ErrInvariant, target.index)
	}

	newLayer := buildLayer(r, target.stageIndex, target.index+1, nodes[0])
	newLayer.line = target.line

	rebuilt := make([]Layer, 0, len(stage.layers)+1)
	rebuilt = append(rebuilt, stage.layers[:target.index+1]...)
	rebuilt = append(rebuilt, newLayer)
	rebuilt = append(rebuilt, stage.layers[target.index+1:]...)
	stage.layers = rebuilt

	r.commit()
	return r.stages[target.stageIndex].layers[target.index+1], nil
}

// commit re-aligns every index/back-reference and regenerates the
// canonical text. Called at the end of every write method.
func (r *Recipe) commit() {
	for si := range r.stages {
		stage := &r.stages[si]
		stage.recipe = r
		stage.index = si

		for li := range stage.layers {
			layer := &stage.layers[li]
			layer.recipe = r
			layer.stageIndex = si
			layer.index = li

			if layer.kind != KindRun {
				continue
			}
			for ci := range layer.run.Commands {
				c := &layer.run.Commands[ci]
				c.recipe = r
				c.stageIndex = si
				c.layerIndex = li
				c.index = ci
			}
		}
	}

	r.raw = Flatten(r)
}

// layerAt returns a pointer into the live tree so callers can mutate a
// layer in place before commit re-aligns everything.
func (r *Recipe) layerAt(stageIndex, layerIndex int) (*Layer, error) {
	if stageIndex < 0 || stageIndex >= len(r.stages) {
		return nil, fmt.Errorf("%w: stage index %d out of range", ErrInvariant, stageIndex)
	}
	layers := r.stages[stageIndex].layers
	if layerIndex < 0 || layerIndex >= len(layers) {
		return nil, fmt.Errorf("%w: layer index %d out of range", ErrInvariant, layerIndex)
	}
	return &r.stages[stageIndex].layers[layerIndex], nil
}

// parseStatements parses one or more raw instruction strings (joined by
// newlines) into parser nodes, used by the layer-splicing write methods.
func parseStatements(statements []string) ([]*parser.Node, error) {
	text := strings.Join(statements, "\n")
	result, err := parser.Parse(bytes.NewReader([]byte(text)))
	if err != nil {
		return nil, errs.Wrap(ErrParse, err)
	}
	return result.AST.Children, nil
}
