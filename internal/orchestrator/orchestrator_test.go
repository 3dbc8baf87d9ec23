package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cruciblehq/imgshrink/internal/oracle"
)

func TestOptimizeEmptyRecipeIsValidationError(t *testing.T) {
	_, err := Optimize(context.Background(), Input{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Optimize() error = %v, want ErrValidation", err)
	}
}

func TestOptimizeRejectsNonObjectManifest(t *testing.T) {
	_, err := Optimize(context.Background(), Input{
		RecipeText: "FROM node:20\nRUN npm install\n",
		Manifest:   []byte(`["not", "an", "object"]`),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Optimize() error = %v, want ErrValidation", err)
	}
}

func TestOptimizeSingleStageNoOracleSeedsIgnoreAndRecommends(t *testing.T) {
	out, err := Optimize(context.Background(), Input{
		RecipeText: "FROM node:20\nWORKDIR /app\nCOPY . .\nRUN npm install\nCMD [\"node\", \"server.js\"]\n",
	})
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}

	if len(out.ActionsTaken) != 0 {
		t.Errorf("expected no actions, got %+v", out.ActionsTaken)
	}
	if len(out.Recommendations) == 0 {
		t.Error("expected at least one recommendation")
	}
	if !strings.Contains(out.ModifiedProject[IgnoreFilename], "node_modules") {
		t.Errorf("ignore file not seeded: %q", out.ModifiedProject[IgnoreFilename])
	}
	if out.ModifiedProject[RecipeFilename] == "" {
		t.Error("modified recipe text is empty")
	}
}

func TestOptimizeMultistageAppliesDevDepsFix(t *testing.T) {
	out, err := Optimize(context.Background(), Input{
		RecipeText: "FROM node:20 AS build\nRUN npm ci\n\nFROM node:20-alpine\nRUN npm ci\n",
	})
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}

	if len(out.ActionsTaken) == 0 {
		t.Fatal("expected at least one action")
	}
	if !strings.Contains(out.ModifiedProject[RecipeFilename], "npm ci --omit=dev") {
		t.Errorf("modified recipe missing the fix: %s", out.ModifiedProject[RecipeFilename])
	}
}

func TestOptimizeIsPureAcrossCalls(t *testing.T) {
	in := Input{RecipeText: "FROM node:20 AS build\nRUN npm ci\n\nFROM node:20-alpine\nRUN npm ci\n"}

	first, err := Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	second, err := Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}

	if first.ModifiedProject[RecipeFilename] != second.ModifiedProject[RecipeFilename] {
		t.Error("Optimize produced different output across identical calls")
	}
}

func TestOptimizeOracleMalformedOutputPreservesRecipe(t *testing.T) {
	in := Input{
		RecipeText: "FROM node:20\nRUN npm install\n",
		Oracle:     &oracle.Static{Response: "{{{ not a recipe"},
	}

	out, err := Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if !strings.Contains(out.ModifiedProject[RecipeFilename], "FROM node:20") {
		t.Errorf("expected the original recipe preserved, got %s", out.ModifiedProject[RecipeFilename])
	}
}
