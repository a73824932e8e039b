package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "witbuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Default manifest file name, looked up in the working directory when no
// --manifest flag is given.
const DefaultManifest = "witbuild.yaml"

// Path to the directory for build logs.
//
//	Linux:   $XDG_STATE_HOME/witbuild or ~/.local/state/witbuild
//	macOS:   ~/Library/Application Support/witbuild
func Logs() string {
	return filepath.Join(xdg.StateHome, toolName)
}

// Path to the build log file for a language template.
//
// Each template gets its own log so that concurrent builds of unrelated
// templates do not interleave.
func BuildLog(template string) string {
	return filepath.Join(Logs(), "build-"+template+".log")
}
