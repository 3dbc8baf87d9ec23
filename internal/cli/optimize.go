package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/imgshrink/internal/oracle"
	"github.com/cruciblehq/imgshrink/internal/orchestrator"
	"github.com/cruciblehq/imgshrink/internal/paths"
	"github.com/cruciblehq/imgshrink/internal/rules"
)

// Represents the 'imgshrink optimize' command.
type OptimizeCmd struct {
	Recipe    string `help:"Path to the Dockerfile to optimize." default:"Dockerfile" placeholder:"PATH"`
	Ignore    string `help:"Path to the .dockerignore file." default:".dockerignore" placeholder:"PATH"`
	Manifest  string `help:"Path to the package.json manifest." default:"package.json" placeholder:"PATH"`
	OutputDir string `help:"Directory the optimized project is written to. Defaults to .imgshrink next to --recipe." placeholder:"PATH"`
	OracleKey string `help:"Anthropic API key, enabling the multistage-build rule." env:"IMGSHRINK_ORACLE_KEY" placeholder:"KEY"`
}

// exitError pairs a failure with the process exit code it maps to:
// 0 success, 1 validation/parse error, 2 unwritable output directory.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// ExitCode returns the process exit code an error from Execute maps to, or 0
// if err is nil. cmd/imgshrink uses this to set os.Exit's argument.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// Executes the optimize command.
func (c *OptimizeCmd) Run(ctx context.Context) error {
	recipeText, err := os.ReadFile(c.Recipe)
	if err != nil {
		return &exitError{1, fmt.Errorf("reading %s: %w", c.Recipe, err)}
	}

	ignoreText, err := readOptional(c.Ignore)
	if err != nil {
		return &exitError{1, fmt.Errorf("reading %s: %w", c.Ignore, err)}
	}

	manifestText, err := readOptional(c.Manifest)
	if err != nil {
		return &exitError{1, fmt.Errorf("reading %s: %w", c.Manifest, err)}
	}

	o, err := c.buildOracle()
	if err != nil {
		return &exitError{1, fmt.Errorf("configuring oracle: %w", err)}
	}

	out, err := orchestrator.Optimize(ctx, orchestrator.Input{
		RecipeText: string(recipeText),
		IgnoreText: ignoreText,
		Manifest:   manifestText,
		Oracle:     o,
	})
	if err != nil {
		return &exitError{1, err}
	}

	outputDir := paths.ResolveOutputDir(filepath.Dir(c.Recipe), c.OutputDir)
	if err := writeOutput(outputDir, out.ModifiedProject); err != nil {
		return &exitError{2, fmt.Errorf("writing %s: %w", outputDir, err)}
	}

	printNotes("Actions taken", out.ActionsTaken)
	printNotes("Recommendations", out.Recommendations)

	return nil
}

// buildOracle returns the Oracle the optimize run should use. A nil Oracle
// (not oracle.NoOp{}) tells the rule engine no oracle is available at all,
// so it skips the multistage rule outright instead of running it only to
// record a guaranteed failure.
func (c *OptimizeCmd) buildOracle() (oracle.Oracle, error) {
	if c.OracleKey == "" {
		return nil, nil
	}
	claude, err := oracle.NewClaudeOracle(c.OracleKey)
	if err != nil {
		return nil, err
	}
	return oracle.NewDiskCache(claude, paths.CacheDir()), nil
}

// readOptional reads path, returning (nil, nil) if it does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// writeOutput writes every entry of project into dir, creating it if needed.
func writeOutput(dir string, project orchestrator.ModifiedProject) error {
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return err
	}
	for name, contents := range project {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), paths.DefaultFileMode); err != nil {
			return err
		}
	}
	return nil
}

func printNotes(heading string, notes []rules.Note) {
	if len(notes) == 0 {
		return
	}
	fmt.Printf("%s:\n", heading)
	for _, n := range notes {
		if n.Line > 0 {
			fmt.Printf("  [%s] %s (%s:%d)\n", n.Rule, n.Title, n.Filename, n.Line)
		} else {
			fmt.Printf("  [%s] %s (%s)\n", n.Rule, n.Title, n.Filename)
		}
		fmt.Printf("      %s\n", n.Description)
	}
}
