package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/vguler/aws-ops-toolkit/model"
	"github.com/vguler/aws-ops-toolkit/service/cleaner"
	"github.com/vguler/aws-ops-toolkit/service/doctor"
	"github.com/vguler/aws-ops-toolkit/service/flag"
	"github.com/vguler/aws-ops-toolkit/service/instances"
	"github.com/vguler/aws-ops-toolkit/service/logscan"
	"github.com/vguler/aws-ops-toolkit/service/output"
	"github.com/vguler/aws-ops-toolkit/service/source"
	"github.com/vguler/aws-ops-toolkit/shared/banner"
	"github.com/vguler/aws-ops-toolkit/shared/spinner"
	"github.com/vguler/aws-ops-toolkit/shared/tables"
	"github.com/vguler/aws-ops-toolkit/shared/trace"
)

func runDoctorCommand(args []string) error {
	if len(args) > 0 {
		return model.Usagef("usage: aws-ops-toolkit doctor")
	}

	svc := doctor.NewService(source.ResolveAWSBin(), source.DefaultFixtureDir(), source.FixtureNames())
	report := svc.Diagnose()
	tables.DrawDoctorTable(report)

	if n := report.FailCount(); n > 0 {
		return model.Envf("%d environment check(s) failing", n)
	}
	return nil
}

func runEC2Command(args []string) error {
	const usage = "usage: aws-ops-toolkit ec2 <list|health> [flags]"

	cf := flag.NewService().NewCommandFlags("ec2")
	state := cf.FlagSet().String("state", instances.StateAll, "Filter the listing by instance state")

	if err := cf.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Println(usage)
			return nil
		}
		return err
	}

	rest := cf.Args()
	if len(rest) == 0 {
		return model.Usagef(usage)
	}

	opts, err := cf.Options()
	if err != nil {
		return err
	}
	trace.SetVerbose(opts.Verbose)

	switch rest[0] {
	case "list":
		if len(rest) > 1 {
			return model.Usagef("usage: aws-ops-toolkit ec2 list [flags]")
		}
		if !instances.ValidStateFilter(*state) {
			return model.Usagef("invalid --state %q", *state)
		}
		return runEC2List(opts, *state)
	case "health":
		if len(rest) > 1 {
			return model.Usagef("usage: aws-ops-toolkit ec2 health [flags]")
		}
		if cf.Changed("state") {
			return model.Usagef("--state applies to ec2 list only")
		}
		return runEC2Health(opts)
	default:
		return model.Usagef("unsupported ec2 command: %s", rest[0])
	}
}

func runEC2List(opts model.Options, state string) error {
	src, err := newSource(opts)
	if err != nil {
		return err
	}

	q := source.Query{
		Args:    []string{"ec2", "describe-instances"},
		Fixture: source.FixtureEC2Instances,
	}

	drawChrome(opts)
	trace.Printf("mode %s, reading %s", opts.Mode, src.Origin(q))

	body, err := src.Open(context.Background(), q)
	if err != nil {
		return err
	}

	startWait(opts, "Describing EC2 instances...")
	result, listErr := instances.List(body, state)
	closeErr := body.Close()
	stopWait(opts)

	if closeErr != nil {
		return closeErr
	}
	if listErr != nil {
		return listErr
	}

	return output.NewService(opts.Format).RenderInstances(model.RenderInstancesInput{
		Profile:     opts.Profile,
		Region:      opts.Region,
		Source:      src.Origin(q),
		StateFilter: state,
		Result:      result,
	})
}

func runEC2Health(opts model.Options) error {
	src, err := newSource(opts)
	if err != nil {
		return err
	}

	q := source.Query{
		Args:    []string{"ec2", "describe-instance-status", "--include-all-instances"},
		Fixture: source.FixtureInstanceStatus,
	}

	drawChrome(opts)
	trace.Printf("mode %s, reading %s", opts.Mode, src.Origin(q))

	body, err := src.Open(context.Background(), q)
	if err != nil {
		return err
	}

	startWait(opts, "Checking EC2 instance status...")
	result, healthErr := instances.Health(body)
	closeErr := body.Close()
	stopWait(opts)

	if closeErr != nil {
		return closeErr
	}
	if healthErr != nil {
		return healthErr
	}

	return output.NewService(opts.Format).RenderHealth(model.RenderHealthInput{
		Profile: opts.Profile,
		Region:  opts.Region,
		Source:  src.Origin(q),
		Result:  result,
	})
}

func runS3Command(args []string) error {
	const usage = "usage: aws-ops-toolkit s3 clean <bucket> --older-than <days> [flags]"

	cf := flag.NewService().NewCommandFlags("s3")
	olderThan := cf.FlagSet().Int("older-than", 0, "Select objects last modified more than this many days ago")
	prefix := cf.FlagSet().String("prefix", "", "Only consider keys with this prefix")
	dryRun := cf.FlagSet().Bool("dry-run", false, "Report what would be deleted without deleting (default)")
	apply := cf.FlagSet().Bool("apply", false, "Delete the selected objects")

	if err := cf.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Println(usage)
			return nil
		}
		return err
	}

	rest := cf.Args()
	if len(rest) == 0 {
		return model.Usagef(usage)
	}
	if rest[0] != "clean" {
		return model.Usagef("unsupported s3 command: %s", rest[0])
	}
	if len(rest) != 2 || rest[1] == "" {
		return model.Usagef(usage)
	}
	bucket := rest[1]

	opts, err := cf.Options()
	if err != nil {
		return err
	}
	trace.SetVerbose(opts.Verbose)

	if *dryRun && *apply {
		return model.Usagef("--dry-run and --apply are mutually exclusive")
	}
	if !cf.Changed("older-than") {
		return model.Usagef("--older-than is required")
	}
	if *olderThan < 0 {
		return model.Usagef("--older-than must be >= 0")
	}

	return runS3Clean(opts, bucket, *prefix, *olderThan, *apply)
}

func runS3Clean(opts model.Options, bucket, prefix string, olderThan int, apply bool) error {
	var runner *source.Runner
	var src source.Service

	if opts.Mode == model.ModeReal {
		r, err := source.NewRunner(opts.Profile, opts.Region)
		if err != nil {
			return err
		}
		runner = r
		src = source.NewLiveService(r)
	} else {
		src = source.NewFixtureService(source.DefaultFixtureDir())
	}

	q := source.Query{
		Args:    []string{"s3api", "list-objects-v2", "--bucket", bucket},
		Fixture: source.FixtureObjects,
	}

	drawChrome(opts)
	trace.Printf("mode %s, reading %s", opts.Mode, src.Origin(q))

	body, err := src.Open(context.Background(), q)
	if err != nil {
		return err
	}

	startWait(opts, "Listing objects in "+bucket+"...")
	plan, planErr := cleaner.Plan(body, bucket, prefix, olderThan, time.Now())
	closeErr := body.Close()
	stopWait(opts)

	if closeErr != nil {
		return closeErr
	}
	if planErr != nil {
		return planErr
	}

	input := model.RenderCleanInput{
		Profile:   opts.Profile,
		Region:    opts.Region,
		Source:    src.Origin(q),
		Apply:     apply,
		Simulated: apply && opts.Mode == model.ModeMock,
		Plan:      plan,
	}

	if apply && len(plan.Candidates) > 0 {
		remover := cleaner.Remover(cleaner.NewSimulatedRemover())
		if runner != nil {
			remover = cleaner.NewLiveRemover(runner)
		}

		keys := plan.Keys()
		trace.Printf("deleting %d object(s) from %s", len(keys), bucket)

		startWait(opts, "Deleting objects...")
		err := remover.Remove(context.Background(), bucket, keys)
		stopWait(opts)
		if err != nil {
			return err
		}
		input.Removed = len(keys)
	}

	return output.NewService(opts.Format).RenderClean(input)
}

func runLogsCommand(args []string) error {
	const usage = "usage: aws-ops-toolkit logs analyze <path> [flags]"

	cf := flag.NewService().NewCommandFlags("logs")
	sinceMin := cf.FlagSet().Int("since-min", 0, "Only consider entries from the last N minutes (0 disables the filter)")
	top := cf.FlagSet().Int("top", 10, "Number of ranked groups to report")

	if err := cf.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Println(usage)
			return nil
		}
		return err
	}

	rest := cf.Args()
	if len(rest) == 0 {
		return model.Usagef(usage)
	}
	if rest[0] != "analyze" {
		return model.Usagef("unsupported logs command: %s", rest[0])
	}
	if len(rest) != 2 || rest[1] == "" {
		return model.Usagef(usage)
	}
	path := rest[1]

	opts, err := cf.Options()
	if err != nil {
		return err
	}
	trace.SetVerbose(opts.Verbose)

	if *sinceMin < 0 {
		return model.Usagef("--since-min must be >= 0")
	}
	if *top < 1 {
		return model.Usagef("--top must be >= 1")
	}

	return runLogsAnalyze(opts, path, *sinceMin, *top)
}

func runLogsAnalyze(opts model.Options, path string, sinceMin, top int) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Envf("log file %s not found", path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	drawChrome(opts)
	trace.Printf("analyzing %s (since-min %d, top %d)", path, sinceMin, top)

	report, err := logscan.Analyze(f, path, sinceMin, top, time.Now())
	if err != nil {
		return err
	}

	return output.NewService(opts.Format).RenderLogs(model.RenderLogInput{Report: report})
}

// newSource selects the invocation's data source. Building the live source
// resolves the AWS CLI binary up front, before any subprocess is spawned.
func newSource(opts model.Options) (source.Service, error) {
	if opts.Mode == model.ModeReal {
		runner, err := source.NewRunner(opts.Profile, opts.Region)
		if err != nil {
			return nil, err
		}
		return source.NewLiveService(runner), nil
	}
	return source.NewFixtureService(source.DefaultFixtureDir()), nil
}

// drawChrome frames table output; structured output stays bare so it can
// be piped.
func drawChrome(opts model.Options) {
	if opts.Format == model.FormatTable {
		banner.DrawBannerTitle()
	}
}

// The spinner runs only while waiting on a live subprocess in table mode;
// mock runs stay byte-identical across invocations.
func startWait(opts model.Options, label string) {
	if opts.Mode == model.ModeReal && opts.Format == model.FormatTable {
		spinner.StartSpinner(label)
	}
}

func stopWait(opts model.Options) {
	if opts.Mode == model.ModeReal && opts.Format == model.FormatTable {
		spinner.StopSpinner()
	}
}
