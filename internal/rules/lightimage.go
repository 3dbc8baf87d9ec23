package rules

import (
	"fmt"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
)

const ruleLightBaseImage = "final-stage-slim-baseimage"

// runtimeImageName is the canonical JS-runtime base image name.
const runtimeImageName = "node"

// LightBaseImageForFinalStage swaps the final stage's base image for a
// lighter equivalent when it isn't already light.
func LightBaseImageForFinalStage(recipe *dockerfile.Recipe, result *Result) {
	final := recipe.FinalStage()
	img := final.BaseImage()

	if img.IsLight() {
		return
	}

	preferred := dockerfile.NewImage(runtimeImageName + ":" + dockerfile.LightSuffix)
	if img.Name() == runtimeImageName {
		preferred = dockerfile.NewImage(runtimeImageName + ":" + img.LightEquivalentTag())
	}

	if recipe.StageCount() == 1 {
		result.addRecommendation(Note{
			Rule:     ruleLightBaseImage,
			Filename: recipeFilename,
			Title:    "Use a smaller base image for the final image produced",
			Description: fmt.Sprintf(
				"Use %s instead of %s as the base image. This will significantly decrease the final image's size. "+
					"This practice is best combined with multistage builds: the final stage should use a slim base image. "+
					"Since testing and build processes take place in a previous stage, dev dependencies and a heavy distro "+
					"aren't needed in the final image.",
				preferred.FullName(), img.FullName(),
			),
		})
		return
	}

	// final came straight from recipe.FinalStage(), so its index is always
	// in range; the only error SetStageBaseImage can return cannot occur here.
	_ = recipe.SetStageBaseImage(final, preferred)

	result.addAction(Note{
		Rule:     ruleLightBaseImage,
		Filename: recipeFilename,
		Title:    "Used a smaller base image for the final stage",
		Description: fmt.Sprintf(
			"Used %s instead of %s as the base image of the final stage. "+
				"This becomes the base image of the final image produced, reducing its size significantly.",
			preferred.FullName(), img.FullName(),
		),
	})
}
