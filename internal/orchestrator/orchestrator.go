// Package orchestrator wires a recipe, its optional collaborators, and the
// rule engine into a single pure function of its inputs. It is the single
// library entry point either the CLI or any future caller uses.
package orchestrator

import (
	"context"
	"errors"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
	"github.com/cruciblehq/imgshrink/internal/errs"
	"github.com/cruciblehq/imgshrink/internal/ignorefile"
	"github.com/cruciblehq/imgshrink/internal/manifest"
	"github.com/cruciblehq/imgshrink/internal/oracle"
	"github.com/cruciblehq/imgshrink/internal/rules"
)

// ErrValidation is returned for malformed input to Optimize: empty recipe
// text, or a manifest whose top-level JSON value isn't an object.
var ErrValidation = errors.New("orchestrator: validation error")

// RecipeFilename, IgnoreFilename and ManifestFilename are the canonical
// output filenames, keying ModifiedProject and used by the CLI as its
// default --recipe/--ignore/--manifest paths.
const (
	RecipeFilename   = "Dockerfile"
	IgnoreFilename   = ".dockerignore"
	ManifestFilename = "package.json"
)

// Input is the orchestrator's single payload shape, shared by every caller
// (CLI today, any future HTTP handler tomorrow).
type Input struct {
	RecipeText string // required, non-empty
	IgnoreText []byte // nil if the ignore file doesn't exist yet
	Manifest   []byte // nil if there is no manifest
	Oracle     oracle.Oracle
}

// ModifiedProject maps each output filename to its (possibly unchanged)
// contents.
type ModifiedProject map[string]string

// Output is Optimize's return value.
type Output struct {
	ActionsTaken    []rules.Note
	Recommendations []rules.Note
	ModifiedProject ModifiedProject
}

// Optimize parses in.RecipeText and its collaborators, runs the fixed rule
// sequence, and returns the assembled result. It never mutates shared state
// across calls: every call builds its own Recipe.
func Optimize(ctx context.Context, in Input) (Output, error) {
	if in.RecipeText == "" {
		return Output{}, errs.Wrapf(ErrValidation, "recipe text is empty")
	}

	recipe, err := dockerfile.Parse([]byte(in.RecipeText))
	if err != nil {
		return Output{}, err
	}

	var man *manifest.Manifest
	if len(in.Manifest) > 0 {
		man, err = manifest.Parse(in.Manifest)
		if err != nil {
			return Output{}, errs.Wrap(ErrValidation, err)
		}
	}

	ignore := ignorefile.New(in.IgnoreText, in.IgnoreText != nil)

	recipe, result := rules.Apply(ctx, recipe, man, ignore, in.Oracle)

	modified := ModifiedProject{
		RecipeFilename: recipe.String(),
		IgnoreFilename: string(ignore.Raw()),
	}
	if len(in.Manifest) > 0 {
		modified[ManifestFilename] = string(in.Manifest)
	}

	return Output{
		ActionsTaken:    result.Actions,
		Recommendations: result.Recommendations,
		ModifiedProject: modified,
	}, nil
}
