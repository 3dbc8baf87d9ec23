package rules

import (
	"path"

	"github.com/cruciblehq/imgshrink/internal/dockerfile"
)

// nodeEnvProduction is the value of the NODE_ENV environment variable that
// signals a production install.
const nodeEnvProduction = "production"

// installedModulesDir is the canonical installed-dependency directory name
// the copy-classifier and seed-ignore rule both key off of.
const installedModulesDir = "node_modules"

// prodFlags maps an option name to the value that marks an install/removal
// invocation as production-only. installCommands/removalCommands below map
// program -> subcommand -> prodFlags.
type prodFlags map[string]any

var installCommands = map[string]map[string]prodFlags{
	"npm": {
		"install":       {"production": true, "omit": "dev"},
		"i":             {"production": true, "omit": "dev"},
		"add":           {"production": true, "omit": "dev"},
		"ci":            {"omit": "dev"},
		"clean-install": {"omit": "dev"},
		"install-clean": {"omit": "dev"},
	},
	"yarn": {
		"install": {"production": true},
	},
}

var removalCommands = map[string]map[string]prodFlags{
	"npm": {
		"prune": {"omit": "dev", "production": true},
	},
}

// first returns one (name, value) pair from flags, preferring "production"
// over "omit" to match the table's declared order.
func (f prodFlags) first() (string, any) {
	for _, name := range []string{"production", "omit"} {
		if v, ok := f[name]; ok {
			return name, v
		}
	}
	for k, v := range f {
		return k, v
	}
	return "", nil
}

// installsNodeModules reports whether cmd invokes a recognized dependency
// installation command.
func installsNodeModules(cmd dockerfile.ShellCommand) bool {
	subs, ok := installCommands[cmd.Program()]
	if !ok {
		return false
	}
	_, ok = subs[cmd.Subcommand()]
	return ok
}

// usesProdOption reports whether cmd's own flags already satisfy one of its
// install command's production-only options.
func usesProdOption(cmd dockerfile.ShellCommand) bool {
	flags := installCommands[cmd.Program()][cmd.Subcommand()]
	for opt, val := range cmd.Options() {
		if want, ok := flags[opt]; ok && want == val {
			return true
		}
	}
	return false
}

// removesDevDependencies reports whether cmd is a recognized removal
// command that, given nodeEnv, clears a dev-dependency violation.
func removesDevDependencies(cmd dockerfile.ShellCommand, nodeEnv string) bool {
	subs, ok := removalCommands[cmd.Program()]
	if !ok {
		return false
	}
	flags, ok := subs[cmd.Subcommand()]
	if !ok {
		return false
	}
	if nodeEnv == nodeEnvProduction {
		return true
	}
	for opt, val := range cmd.Options() {
		if want, ok := flags[opt]; ok && want == val {
			return true
		}
	}
	return false
}

// stageInstallsDevDependencies walks stage's layers top to bottom tracking
// NODE_ENV, and returns whether the last install/removal command in the
// stage leaves it installing dev dependencies, plus the offending command
// if so.
func stageInstallsDevDependencies(stage dockerfile.Stage) (bool, *dockerfile.ShellCommand) {
	var installsDevDeps bool
	var offending *dockerfile.ShellCommand
	nodeEnv := ""

	for _, layer := range stage.Layers() {
		switch layer.Kind() {
		case dockerfile.KindEnv:
			for _, v := range layer.Env() {
				if v.Key == "NODE_ENV" {
					nodeEnv = v.Value
				}
			}
		case dockerfile.KindRun:
			run := layer.Run()
			for i := range run.Commands {
				cmd := run.Commands[i]
				switch {
				case installsNodeModules(cmd):
					if nodeEnv == nodeEnvProduction || usesProdOption(cmd) {
						installsDevDeps, offending = false, nil
					} else {
						installsDevDeps, offending = true, &run.Commands[i]
					}
				case removesDevDependencies(cmd, nodeEnv):
					installsDevDeps, offending = false, nil
				}
			}
		}
	}

	return installsDevDeps, offending
}

// copiesInstalledModules reports whether a Copy layer's sources include the
// installed-dependency directory as a base name.
func copiesInstalledModules(copyData dockerfile.CopyData) bool {
	for _, src := range copyData.Sources {
		if path.Base(src) == installedModulesDir {
			return true
		}
	}
	return false
}
