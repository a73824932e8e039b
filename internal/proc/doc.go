// Package proc runs external toolchain commands on the host.
//
// A [Runner] wraps command strings in a shell invocation ("sh -c command"),
// captures standard output and error for diagnostics, and reports the exit
// code without judging it; policy around non-zero exits belongs to the
// caller. Cancelling the context kills the in-flight process.
//
// Example usage:
//
//	runner := proc.New()
//	result, err := runner.Run(ctx, "wit-bindgen tiny-go ./wit-generated", "components/go")
//	if err != nil {
//	    return err
//	}
//	if result.ExitCode != 0 {
//	    return fmt.Errorf("exit code %d: %s", result.ExitCode, result.Stderr)
//	}
package proc
