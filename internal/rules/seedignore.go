package rules

import "github.com/cruciblehq/imgshrink/internal/ignorefile"

// ignoreFilename is the canonical name used in seed-ignore's OptimizationNotes.
const ignoreFilename = ".dockerignore"

// seedEntries are the literal strings the seed-ignore rule inserts: the
// installed-modules directory name, npm's debug log name, and the VCS
// metadata directory name.
var seedEntries = []string{installedModulesDir, "npm-debug.log", ".git"}

// SeedIgnoreFile creates the ignore file if it doesn't exist, then adds the
// seed entries it's missing. It never produces a Note — idempotence is the
// only requirement, and the original source leaves this rule's actions
// unreported (project.py's own TODO).
func SeedIgnoreFile(ignore *ignorefile.IgnoreFile) {
	if !ignore.Exists() {
		ignore.Create()
	}
	ignore.AddIfAbsent(seedEntries)
}
