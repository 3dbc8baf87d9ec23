package rules

import (
	"context"
	"log/slog"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
	"github.com/cruciblehq/imgshrink/internal/manifest"
	"github.com/cruciblehq/imgshrink/internal/oracle"
)

const recipeFilename = "Dockerfile"

const ruleUseMultistage = "use-multistage-builds"

// IntroduceMultistage rewrites a single-stage recipe into a multi-stage one
// via the oracle. Preconditions (single stage, oracle available) are the
// caller's responsibility. On any failure to produce a usable multi-stage
// recipe, it records a recommendation and returns the recipe unmodified.
func IntroduceMultistage(ctx context.Context, recipe *dockerfile.Recipe, man *manifest.Manifest, o oracle.Oracle, result *Result) *dockerfile.Recipe {
	recommendation := Note{
		Rule:     ruleUseMultistage,
		Filename: recipeFilename,
		Title:    "Use Multistage Builds",
		Description: "Create a final stage using a slim base image such as node alpine. " +
			"Use the first stage to test and build the application. " +
			"Copy the built application code and assets into the final stage. " +
			"Set the NODE_ENV environment variable to production and install the dependencies, excluding devDependencies.",
	}

	scripts := extractInvokedScripts(recipe, man)

	updatedText, err := o.AddMultistage(ctx, recipe.String(), scripts)
	if err != nil {
		slog.Error("oracle failed to add multistage builds", "error", err)
		result.addRecommendation(recommendation)
		return recipe
	}

	newRecipe, err := dockerfile.Parse([]byte(updatedText))
	if err != nil {
		slog.Error("recipe returned by oracle is invalid", "error", err)
		result.addRecommendation(recommendation)
		return recipe
	}

	if newRecipe.StageCount() < 2 {
		slog.Warn("oracle could not add multistage builds to recipe")
		result.addRecommendation(recommendation)
		return recipe
	}

	result.addAction(Note{
		Rule:     ruleUseMultistage,
		Filename: recipeFilename,
		Title:    "Implemented Multistage Builds",
		Description: "Multistage builds have been applied. A new stage has been created with a lighter base image. " +
			"This stage only includes the application code, dependencies and any other assets necessary for running the app.",
	})

	return newRecipe
}

// extractInvokedScripts walks every run-layer's shell commands looking for
// npm script invocations and resolves them against man. "npm start" and
// "npm run start" are treated the same; an undefined "start" script
// defaults to "node server.js".
func extractInvokedScripts(recipe *dockerfile.Recipe, man *manifest.Manifest) []oracle.ScriptInvocation {
	var scripts []oracle.ScriptInvocation
	if man == nil {
		return scripts
	}

	for _, stage := range recipe.Stages() {
		for _, layer := range stage.Layers() {
			if layer.Kind() != dockerfile.KindRun {
				continue
			}
			for _, cmd := range layer.Run().Commands {
				if cmd.Program() != "npm" {
					continue
				}

				sub := cmd.Subcommand()
				switch {
				case sub == "start":
					contents, ok := man.Script("start")
					if !ok {
						contents = "node server.js"
					}
					scripts = append(scripts, oracle.ScriptInvocation{Command: cmd.Text(), Script: contents})

				case sub == "run" || sub == "run-script":
					args := cmd.Args()
					if len(args) < 2 {
						continue
					}
					name := args[1]
					contents, ok := man.Script(name)
					if !ok {
						if name == "start" {
							contents = "node server.js"
						} else {
							contents = "(No definition found in manifest)"
						}
					}
					scripts = append(scripts, oracle.ScriptInvocation{Command: cmd.Text(), Script: contents})
				}
			}
		}
	}

	return scripts
}
