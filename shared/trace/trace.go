// Package trace prints verbose diagnostics to stderr.
package trace

import (
	"fmt"
	"os"
)

var enabled bool

// SetVerbose toggles diagnostic output for the process.
func SetVerbose(on bool) {
	enabled = on
}

// Verbose reports whether diagnostic output is on.
func Verbose() bool {
	return enabled
}

// Printf writes one diagnostic line to stderr when verbose output is on.
func Printf(format string, args ...any) {
	if !enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "» "+format+"\n", args...)
}
