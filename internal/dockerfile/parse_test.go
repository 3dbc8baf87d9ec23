package dockerfile

import (
	"strings"
	"testing"
)

func TestParseEmptyIsValidationError(t *testing.T) {
	_, err := Parse([]byte(""))
	if err == nil {
		t.Fatal("expected an error for empty recipe text")
	}
}

func TestParseMustBeginWithFromOrArg(t *testing.T) {
	_, err := Parse([]byte("WORKDIR /app\nFROM node:20\n"))
	if err == nil {
		t.Fatal("expected a parse error for a recipe not beginning with FROM/ARG")
	}
}

func TestParseSingleStage(t *testing.T) {
	text := `FROM node:20
WORKDIR /app
COPY . .
RUN npm install
CMD ["node", "server.js"]
`
	r, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if r.StageCount() != 1 {
		t.Fatalf("StageCount() = %d, want 1", r.StageCount())
	}

	stage := r.Stages()[0]
	if stage.BaseImage().FullName() != "node:20" {
		t.Errorf("base image = %q, want node:20", stage.BaseImage().FullName())
	}
	if len(stage.Layers()) != 4 {
		t.Fatalf("len(Layers()) = %d, want 4", len(stage.Layers()))
	}

	runLayer := stage.Layers()[2]
	if runLayer.Kind() != KindRun {
		t.Fatalf("layer 2 kind = %v, want Run", runLayer.Kind())
	}
	if len(runLayer.Run().Commands) != 1 {
		t.Fatalf("len(Run().Commands) = %d, want 1", len(runLayer.Run().Commands))
	}
	if prog := runLayer.Run().Commands[0].Program(); prog != "npm" {
		t.Errorf("Program() = %q, want npm", prog)
	}
}

func TestParseMultiStageWithNames(t *testing.T) {
	text := `FROM node:20 AS build
WORKDIR /app
RUN npm run build

FROM node:20-slim
COPY --from=build /app/dist /app/dist
`
	r, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if r.StageCount() != 2 {
		t.Fatalf("StageCount() = %d, want 2", r.StageCount())
	}
	if r.Stages()[0].Name() != "build" {
		t.Errorf("stage 0 name = %q, want build", r.Stages()[0].Name())
	}

	final := r.FinalStage()
	copyLayer := final.Layers()[0]
	if copyLayer.Kind() != KindCopy {
		t.Fatalf("final stage layer 0 kind = %v, want Copy", copyLayer.Kind())
	}
	if copyLayer.Copy().From != "build" {
		t.Errorf("Copy().From = %q, want build", copyLayer.Copy().From)
	}
}

func TestParseExecFormRunRoundTrips(t *testing.T) {
	r, err := Parse([]byte("FROM node:20\nRUN [\"echo\", \"hi\"]\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	layer := r.Stages()[0].Layers()[0]
	if layer.Run().Form != FormExec {
		t.Fatalf("form = %v, want Exec", layer.Run().Form)
	}
	cmds := layer.Run().Commands
	if len(cmds) != 1 || cmds[0].Program() != "echo" {
		t.Fatalf("unexpected exec-form commands: %+v", cmds)
	}
}

func TestFlattenIdempotent(t *testing.T) {
	text := `FROM node:20
WORKDIR /app
COPY . .
RUN npm ci && npm run build
CMD ["node", "server.js"]
`
	r1, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("first Parse() error: %v", err)
	}
	r2, err := Parse(r1.Raw())
	if err != nil {
		t.Fatalf("second Parse() error: %v", err)
	}
	if !strings.EqualFold(string(r1.Raw()), string(r2.Raw())) {
		t.Errorf("flatten(parse(flatten(parse(R)))) != flatten(parse(R))\n1: %s\n2: %s", r1.Raw(), r2.Raw())
	}
}

func TestParseGlobalArgsPreserved(t *testing.T) {
	text := "ARG NODE_VERSION=20\nFROM node:${NODE_VERSION}\n"
	r, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(r.GlobalArgs()) != 1 {
		t.Fatalf("len(GlobalArgs()) = %d, want 1", len(r.GlobalArgs()))
	}
	if !strings.Contains(r.GlobalArgs()[0], "NODE_VERSION") {
		t.Errorf("global arg lost its content: %q", r.GlobalArgs()[0])
	}
}
