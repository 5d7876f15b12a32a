// Package model defines the data structures used throughout the application.
package model

// Mode selects where command data comes from.
type Mode string

const (
	// ModeMock serves canned documents from the fixture store.
	ModeMock Mode = "mock"
	// ModeReal streams live data through the AWS CLI.
	ModeReal Mode = "real"
)

// Format represents the output format type.
type Format string

const (
	FormatTable      Format = "table"
	FormatStructured Format = "structured"
)

// Options carries the global settings of one invocation. The flag service
// builds it once after validation; commands receive it by value and nothing
// mutates it afterwards.
type Options struct {
	Mode    Mode
	Profile string
	Region  string
	Format  Format
	Verbose bool
}
