//go:build !windows

// Package ansi turns on ANSI escape sequence processing where the terminal
// needs it.
package ansi

// EnableANSI is a no-op outside Windows; escape sequences work out of the box.
func EnableANSI() {
}
