package internal

import (
	"strconv"
	"sync/atomic"
)

// Runtime output modes for the build tool. Each one starts from a build-time
// default and may be overridden by CLI flags after parsing.
var (
	quietMode   atomic.Bool // Suppress informational output.
	debugMode   atomic.Bool // Emit debug-level logging.
	verboseMode atomic.Bool // Include extra detail in log output.
)

// Seeds the mode flags from their linker-flag values.
//
// Release pipelines may bake witbuild binaries with rawQuiet, rawDebug, or
// rawVerbose preset via ldflags; unset values default to "false".
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Enables or disables debug mode.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Enables or disables verbose logging.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
