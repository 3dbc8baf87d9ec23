package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory naming.
	appName = "imgshrink"

	// Default subdirectory written under the project root when --output-dir
	// is not given on the command line.
	DefaultOutputSubdir = ".imgshrink"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory used for cached oracle responses and other
// run-to-run state that isn't part of the optimized project itself.
//
//	Linux:   ~/.cache/imgshrink
//	macOS:   ~/Library/Caches/imgshrink
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// Resolves the output directory for a single optimize invocation.
//
// An explicit dir always wins. Otherwise the result is DefaultOutputSubdir
// under root, matching the CLI's documented default.
func ResolveOutputDir(root, dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(root, DefaultOutputSubdir)
}
