package oracle

import "strings"

// systemPrompt instructs the model how to rewrite a single-stage recipe into
// a multi-stage one. Ported from original_source/app/service/ai.py's
// _system_prompt, adapted from "Dockerfile" to this module's own vocabulary.
const systemPrompt = `You are an expert software and DevOps engineer who specializes in Docker and Node.js backend applications.

Given a Node.js project that contains a Docker image definition to containerize it, your goal is to reduce the size of the Docker image as much as possible, while still keeping the recipe legible and developer-friendly.

As part of this request, your only task is to modify the given single-stage recipe to adopt multi-stage builds. Multi-stage has the benefit that the final image produced (final stage) uses a slim base image and only contains things that you put in it.
Create a final stage in the recipe which only contains the application source code, its dependencies (excluding development-only dependencies from the manifest) and anything else necessary for the app to run or relevant to the final image.

* The final stage must use a slim base image if possible. If the previous stage uses a specific version of the runtime, make sure to use the same version.
* If possible, set the NODE_ENV environment variable to production. This should be done BEFORE running any commands related to the runtime or its package manager. This ensures that dev dependencies are not installed in the final stage.
* Do a fresh install of the dependencies in the final stage and exclude dev dependencies. Do not change the installation commands in the previous stage and don't copy the installed dependency directory from the previous stage.
* Try to keep your code changes as consistent with the original recipe as possible. For example, if the previous stage uses "npm install" for installing dependencies, don't replace it with "npm ci". Try to use "install" only.
* If the previous stage contains metadata such as LABEL statements, include them in the final stage too if relevant.
* Comments should be added only in the new stage that you're writing. Don't add any comments in the previous stage unless you need to make an important remark.
* If the previous stage contains any RUN statements invoking scripts such as "npm run build", that script's own commands are shared with you below so you can understand its behaviour.

After writing all the code, review it step-by-step and think about what the final image would contain to ensure nothing important was left out.

As your response, output only the new recipe text, nothing else.`

// buildUserPrompt renders the recipe text and any resolved script bodies
// into the single user turn sent to the oracle (ai.py's _user_prompt /
// _user_prompt_additional_scripts).
func buildUserPrompt(recipeText string, scripts []ScriptInvocation) string {
	var b strings.Builder
	b.WriteString("Optimize this recipe:\n\n```\n")
	b.WriteString(recipeText)
	b.WriteString("\n```\n")

	if len(scripts) > 0 {
		b.WriteString("\n-- Additional Details --\n\n")
		for _, s := range scripts {
			b.WriteString(s.Command)
			b.WriteString(" runs:\n")
			b.WriteString(s.Script)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// extractRecipe strips a surrounding ```-fenced code block from a model
// response, if present. Ported from ai.py's add_multistage_builds comment
// ("gpt 4o always returns code inside backticks") — models asked for "only
// the new recipe text" still sometimes fence it anyway.
func extractRecipe(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
