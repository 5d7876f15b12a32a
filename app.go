// Package main is the entry point for the aws-ops-toolkit application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/vguler/aws-ops-toolkit/model"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return model.Usagef("no command given")
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return nil
	case "version", "--version":
		fmt.Printf("aws-ops-toolkit %s (commit %s, built %s)\n", version, commit, date)
		return nil
	case "doctor":
		return runDoctorCommand(args[1:])
	case "ec2":
		return runEC2Command(args[1:])
	case "s3":
		return runS3Command(args[1:])
	case "logs":
		return runLogsCommand(args[1:])
	default:
		printUsage(os.Stderr)
		return model.Usagef("unknown command: %s", args[0])
	}
}

// exitCodeFor maps an error onto the process exit status: usage and
// environment errors exit 2, a failed AWS CLI child propagates its own
// status, everything else exits 1.
func exitCodeFor(err error) int {
	if model.IsUsage(err) || model.IsEnvironment(err) {
		return 2
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

const usageText = `aws-ops-toolkit inspects and manages AWS resources from canned or live data.

Usage:
  aws-ops-toolkit <command> [flags]

Commands:
  doctor                 Report on the local environment
  ec2 list               List EC2 instances
  ec2 health             Assess EC2 instance health
  s3 clean <bucket>      Identify or delete objects older than a threshold
  logs analyze <path>    Rank the notable entries of a local log file
  version                Print build information
  help                   Show this help

Global flags (every command except doctor):
      --mock             Read canned data from the fixture store (default)
      --real             Read live data through the AWS CLI
  -p, --profile string   AWS profile to use
  -r, --region string    AWS region to use
      --format string    Output format, table or structured (default "table")
  -v, --verbose          Print diagnostic detail on stderr

Command flags:
  ec2 list       --state all|pending|running|shutting-down|terminated|stopping|stopped
  s3 clean       --older-than <days> (required), --prefix <p>, --dry-run (default), --apply
  logs analyze   --since-min <minutes> (0 disables the time filter), --top <n>

The fixture store defaults to ./fixtures; set AWS_OPS_TOOLKIT_FIXTURES to
relocate it. Live mode runs the aws binary found on PATH; set
AWS_OPS_TOOLKIT_AWS_BIN to point elsewhere.
`
