// Package flag builds and parses the per-command flag sets. Every data
// command shares one set of global flags; commands add their own on top
// and read positional words from Args after parsing.
package flag

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vguler/aws-ops-toolkit/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// CommandFlags wraps one command's flag set together with the bound global
// flag values. Flags and positional words may interleave anywhere after
// the command word.
type CommandFlags struct {
	fs      *pflag.FlagSet
	mock    bool
	real    bool
	profile string
	region  string
	format  string
	verbose bool
}

// NewCommandFlags builds the flag set shared by every data command.
func (s *service) NewCommandFlags(command string) *CommandFlags {
	cf := &CommandFlags{fs: pflag.NewFlagSet(command, pflag.ContinueOnError)}
	cf.fs.SetOutput(io.Discard)

	cf.fs.BoolVar(&cf.mock, "mock", false, "Read canned data from the fixture store (default)")
	cf.fs.BoolVar(&cf.real, "real", false, "Read live data through the AWS CLI")
	cf.fs.StringVarP(&cf.profile, "profile", "p", "", "AWS profile to use")
	cf.fs.StringVarP(&cf.region, "region", "r", "", "AWS region to use")
	cf.fs.StringVar(&cf.format, "format", string(model.FormatTable), "Output format (table or structured)")
	cf.fs.BoolVarP(&cf.verbose, "verbose", "v", false, "Print diagnostic detail on stderr")

	return cf
}

// FlagSet exposes the underlying set so a command can register its own
// flags before Parse.
func (c *CommandFlags) FlagSet() *pflag.FlagSet {
	return c.fs
}

// Parse parses args. Parse failures become usage errors; a help request
// passes through unchanged so the caller can print usage and exit clean.
func (c *CommandFlags) Parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return err
		}
		return model.Usagef("%v", err)
	}
	return nil
}

// Args returns the positional words left after parsing.
func (c *CommandFlags) Args() []string {
	return c.fs.Args()
}

// Changed reports whether the named flag was given on the command line.
func (c *CommandFlags) Changed(name string) bool {
	return c.fs.Changed(name)
}

// Options validates the parsed global flags and freezes them into the
// invocation's options value.
func (c *CommandFlags) Options() (model.Options, error) {
	if c.mock && c.real {
		return model.Options{}, model.Usagef("--mock and --real are mutually exclusive")
	}

	mode := model.ModeMock
	if c.real {
		mode = model.ModeReal
	}

	format := model.Format(strings.TrimSpace(c.format))
	switch format {
	case model.FormatTable, model.FormatStructured:
	default:
		return model.Options{}, model.Usagef("invalid --format %q (want table or structured)", c.format)
	}

	return model.Options{
		Mode:    mode,
		Profile: c.profile,
		Region:  c.region,
		Format:  format,
		Verbose: c.verbose,
	}, nil
}
