package rules

import (
	"context"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
	"github.com/cruciblehq/imgshrink/internal/ignorefile"
	"github.com/cruciblehq/imgshrink/internal/manifest"
	"github.com/cruciblehq/imgshrink/internal/oracle"
)

// Apply runs the fixed rule sequence against a single recipe + collaborators.
// man and o may be nil: a nil manifest simply
// yields no resolved script bodies for the multistage rule; a nil oracle
// means that rule is skipped entirely rather than guaranteed to fail, since
// the precondition for running it at all is "oracle is available".
//
// Apply returns the (possibly replaced) recipe and the combined result of
// every rule that ran.
func Apply(ctx context.Context, recipe *dockerfile.Recipe, man *manifest.Manifest, ignore *ignorefile.IgnoreFile, o oracle.Oracle) (*dockerfile.Recipe, *Result) {
	result := &Result{}

	SeedIgnoreFile(ignore)

	if o != nil && recipe.StageCount() == 1 {
		recipe = IntroduceMultistage(ctx, recipe, man, o, result)
	}

	LightBaseImageForFinalStage(recipe, result)

	devDepsResult := ExcludeDevDependencies(recipe)
	result.Actions = append(result.Actions, devDepsResult.Actions...)
	result.Recommendations = append(result.Recommendations, devDepsResult.Recommendations...)

	return recipe, result
}
