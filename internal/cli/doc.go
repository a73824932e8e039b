// Parses flags and configures logging for the witbuild CLI.
//
// The tool accepts the following global flags:
//
//	-q, --quiet      Suppress informational output.
//	-v, --verbose    Enable verbose output.
//	-d, --debug      Enable debug output.
//	-m, --manifest   Path to the build manifest.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level and verbosity
// before the selected command runs.
package cli
