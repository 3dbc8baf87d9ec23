// Package dockerfile models a build recipe as a mutable, re-serializable
// tree: stages opened by FROM instructions, layers inside each stage, and
// shell commands inside RUN layers.
//
// [Recipe] is the sole write surface. Every other type (Stage, Layer,
// ShellCommand) is a read-only view resolved through it; mutating a Recipe
// re-aligns stage/layer/shell-command indices and regenerates the canonical
// text in the same call. Instruction-text parsing is delegated to
// github.com/moby/buildkit/frontend/dockerfile/parser; splitting a RUN
// layer's command chain on &&, ||, ;, | and &, and lexing a single command
// into shell words, are delegated to mvdan.cc/sh/v3/syntax.
package dockerfile
