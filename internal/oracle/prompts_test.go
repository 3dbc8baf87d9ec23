package oracle

import (
	"strings"
	"testing"
)

func TestBuildUserPromptIncludesScripts(t *testing.T) {
	prompt := buildUserPrompt("FROM node:20\n", []ScriptInvocation{
		{Command: "npm run build", Script: "babel . -d dist"},
	})

	if !strings.Contains(prompt, "FROM node:20") {
		t.Errorf("prompt missing recipe text: %s", prompt)
	}
	if !strings.Contains(prompt, "npm run build") || !strings.Contains(prompt, "babel . -d dist") {
		t.Errorf("prompt missing script details: %s", prompt)
	}
}

func TestBuildUserPromptWithoutScripts(t *testing.T) {
	prompt := buildUserPrompt("FROM node:20\n", nil)
	if strings.Contains(prompt, "Additional Details") {
		t.Errorf("prompt should omit the scripts section when there are none: %s", prompt)
	}
}

func TestExtractRecipeStripsFence(t *testing.T) {
	in := "```dockerfile\nFROM node:20-alpine\nCOPY . .\n```"
	want := "FROM node:20-alpine\nCOPY . ."
	if got := extractRecipe(in); got != want {
		t.Errorf("extractRecipe() = %q, want %q", got, want)
	}
}

func TestExtractRecipeLeavesUnfencedText(t *testing.T) {
	in := "FROM node:20-alpine\n"
	if got := extractRecipe(in); got != strings.TrimSpace(in) {
		t.Errorf("extractRecipe() = %q, want %q", got, strings.TrimSpace(in))
	}
}
