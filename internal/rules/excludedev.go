package rules

import (
	"fmt"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
)

const ruleExcludeDevDeps = "exclude-devDependencies"

// ExcludeDevDependencies keeps devDependencies out of the final stage,
// either by adding a production-only flag to its own install command or by
// replacing a COPY of node_modules with a fresh production-only install.
func ExcludeDevDependencies(recipe *dockerfile.Recipe) *Result {
	result := &Result{}
	final := recipe.FinalStage()

	offends, offending := stageInstallsDevDependencies(final)
	if offends {
		excludeDevDepsFromInstall(recipe, final, *offending, result)
		return result
	}

	excludeDevDepsFromCopy(recipe, final, result)
	return result
}

// excludeDevDepsFromInstall handles the case where the final stage itself
// installs dev dependencies.
func excludeDevDepsFromInstall(recipe *dockerfile.Recipe, final dockerfile.Stage, offending dockerfile.ShellCommand, result *Result) {
	if recipe.StageCount() == 1 {
		result.addRecommendation(Note{
			Rule:     ruleExcludeDevDeps,
			Filename: recipeFilename,
			Title:    "Do not install devDependencies in the final image",
			Description: `You seem to be installing modules listed in "devDependencies" in your manifest.
These modules are suitable in the build/test phase but are not required by your app during runtime.
The final image of your app should not contain these unnecessary dependencies.
Instead, use a command like "npm install --production", "yarn install --production" or "npm ci --omit=dev" to exclude devDependencies.
This is best done using multistage builds. Create a new (final) stage and install dependencies excluding the devDependencies.`,
			Line: offending.Line(),
		})
		return
	}

	flagName, flagValue := installCommands[offending.Program()][offending.Subcommand()].first()
	// flagValue is always bool or string per the installCommands table, so
	// AddFlagToShellCommand cannot fail here.
	updated, _ := recipe.AddFlagToShellCommand(offending, flagName, flagValue)

	result.addAction(Note{
		Rule:     ruleExcludeDevDeps,
		Filename: recipeFilename,
		Title:    "Modified installation command to exclude devDependencies",
		Description: fmt.Sprintf(
			"The dependency installation command in the final stage %q has been modified to %q. "+
				"This ensures that the final image excludes all modules listed under devDependencies and only "+
				"includes production modules needed by the app at runtime.",
			offending.Text(), updated.Text(),
		),
		Line: updated.Line(),
	})
}

// excludeDevDepsFromCopy handles the case where the final stage doesn't
// install anything itself, so check whether it copies the
// installed-dependency directory in from elsewhere.
func excludeDevDepsFromCopy(recipe *dockerfile.Recipe, final dockerfile.Stage, result *Result) {
	for _, layer := range final.Layers() {
		if layer.Kind() != dockerfile.KindCopy {
			continue
		}
		copyData := layer.Copy()
		if !copiesInstalledModules(copyData) {
			continue
		}

		if len(copyData.Sources) > 1 {
			result.addRecommendation(Note{
				Rule:     ruleExcludeDevDeps,
				Filename: recipeFilename,
				Title:    "Avoid copying node_modules into the final image",
				Description: `You seem to be copying node_modules into your final image.
Avoid this. Instead, perform a fresh dependency installation which excludes devDependencies.
Instead of COPY, use something like "RUN npm install --production" / "RUN yarn install --production".`,
				Line: layer.Line(),
			})
			return
		}

		if copyData.From == "" {
			// Copying from the build context: always an illegal state to
			// auto-fix for a single-stage recipe.
			if recipe.StageCount() < 2 {
				result.addRecommendation(Note{
					Rule:     ruleExcludeDevDeps,
					Filename: recipeFilename,
					Title:    "Do not copy node_modules from your local system",
					Description: `You seem to be copying node_modules from your local system into the final image.
Avoid this. Always perform a fresh dependency installation which excludes devDependencies for your final image.
Create a new (final) stage, copy the built code into it, and perform a fresh install using "npm install --production" / "yarn install --production".`,
					Line: layer.Line(),
				})
				return
			}

			replaceWithFreshInstall(recipe, layer, result, fmt.Sprintf(
				"Copying node_modules from the local machine is not recommended. A fresh install of "+
					"production dependencies here ensures that the final image only contains modules needed "+
					"for runtime, leaving out all devDependencies."))
			return
		}

		sourceStage, ok := recipe.StageByName(copyData.From)
		if !ok {
			// --from references an image, not a prior stage: out of scope
			// for this rule.
			return
		}

		sourceOffends, _ := stageInstallsDevDependencies(sourceStage)
		if !sourceOffends {
			return
		}

		if recipe.StageCount() < 2 {
			// Semantically illegal (a single-stage recipe cannot COPY
			// --from another stage); leave it alone.
			return
		}

		replaceWithFreshInstall(recipe, layer, result, fmt.Sprintf(
			"It seems you're copying node_modules from a previous stage (%q) which installs devDependencies as well, "+
				"so your final image will contain unnecessary packages. A fresh installation of only production "+
				"dependencies here ensures the final image only contains modules needed for runtime.",
			copyData.From))
		return
	}
}

// replaceWithFreshInstall replaces a COPY layer with a manifest-glob copy
// plus a production-only install.
func replaceWithFreshInstall(recipe *dockerfile.Recipe, layer dockerfile.Layer, result *Result, reason string) {
	statements := []string{
		"COPY package*.json ./",
		"RUN npm install --production",
	}

	newLayers, err := recipe.ReplaceLayerWithStatements(layer, statements)
	if err != nil || len(newLayers) == 0 {
		result.addRecommendation(Note{
			Rule:        ruleExcludeDevDeps,
			Filename:    recipeFilename,
			Title:       "Perform fresh install of node_modules in the final stage",
			Description: reason,
			Line:        layer.Line(),
		})
		return
	}

	result.addAction(Note{
		Rule:     ruleExcludeDevDeps,
		Filename: recipeFilename,
		Title:    "Performed fresh install of node_modules in the final stage",
		Description: fmt.Sprintf("Replaced %q with a fresh, production-only dependency install. %s",
			layer.Text(), reason),
		Line: newLayers[0].Line(),
	})
}
