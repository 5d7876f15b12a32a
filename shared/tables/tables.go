// Package tables renders command results as terminal tables.
package tables

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vguler/aws-ops-toolkit/model"
	"github.com/vguler/aws-ops-toolkit/service/doctor"
	"github.com/vguler/aws-ops-toolkit/service/instances"
	"github.com/vguler/aws-ops-toolkit/service/logscan"
)

// DrawInstancesTable renders an instance listing.
func DrawInstancesTable(input model.RenderInstancesInput) {
	fmt.Println("\n🖥  EC2 Instances")
	drawScopeLine(input.Profile, input.Region, input.Source)

	if len(input.Result.Instances) == 0 {
		fmt.Printf("   No instances matched (%d examined).\n", input.Result.Examined)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Instance", "Name", "Type", "State", "AZ", "Public IP", "Private IP", "Launched"})

	for _, inst := range input.Result.Instances {
		t.AppendRow(table.Row{
			inst.InstanceID,
			truncate(inst.Name, 24),
			inst.Type,
			formatState(inst.State),
			inst.AZ,
			orDash(inst.PublicIP),
			orDash(inst.PrivateIP),
			formatTime(inst.LaunchTime),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("   %d instances (%s)\n", input.Result.Examined, stateCountsLine(input.Result.Counts))
}

func stateCountsLine(counts map[string]int) string {
	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Strings(states)

	parts := make([]string, 0, len(states))
	for _, s := range states {
		parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
	}
	return strings.Join(parts, ", ")
}

// DrawHealthTable renders a health assessment.
func DrawHealthTable(input model.RenderHealthInput) {
	fmt.Println("\n🩺 EC2 Instance Health")
	drawScopeLine(input.Profile, input.Region, input.Source)

	counts := input.Result.Counts
	if len(input.Result.Records) == 0 {
		fmt.Println("   No instance status records found.")
		return
	}

	fmt.Printf("   ")
	if n := counts[instances.VerdictImpaired]; n > 0 {
		fmt.Printf("%s ", text.FgRed.Sprintf("🔴 %d impaired", n))
	}
	if n := counts[instances.VerdictInitializing]; n > 0 {
		fmt.Printf("%s ", text.FgCyan.Sprintf("🔵 %d initializing", n))
	}
	if n := counts[instances.VerdictNotRunning]; n > 0 {
		fmt.Printf("%s ", text.FgYellow.Sprintf("🟡 %d not-running", n))
	}
	if n := counts[instances.VerdictUnknown]; n > 0 {
		fmt.Printf("%s ", text.FgHiBlack.Sprintf("⚪ %d unknown", n))
	}
	if n := counts[instances.VerdictHealthy]; n > 0 {
		fmt.Printf("%s ", text.FgGreen.Sprintf("🟢 %d healthy", n))
	}
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Instance", "AZ", "State", "System Check", "Instance Check", "Verdict", "Scheduled Events"})

	for _, rec := range input.Result.Records {
		t.AppendRow(table.Row{
			rec.InstanceID,
			rec.AZ,
			rec.State,
			rec.SystemStatus,
			rec.InstanceStatus,
			formatVerdict(rec.Verdict),
			truncate(strings.Join(rec.Events, "; "), 44),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawCleanTable renders a cleanup plan and its outcome.
func DrawCleanTable(input model.RenderCleanInput) {
	fmt.Println("\n🧹 S3 Cleanup")
	drawScopeLine(input.Profile, input.Region, input.Source)

	plan := input.Plan
	scope := fmt.Sprintf("bucket %s, older than %d days", plan.Bucket, plan.OlderThanDays)
	if plan.Prefix != "" {
		scope += fmt.Sprintf(", prefix %q", plan.Prefix)
	}
	fmt.Printf("   %s %s\n", formatCleanMode(input.CleanMode()), scope)

	if len(plan.Candidates) == 0 {
		fmt.Printf("   Nothing to clean (%d objects examined).\n", plan.Examined)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Key", "Size", "Last Modified", "Age (days)"})

	for _, c := range plan.Candidates {
		t.AppendRow(table.Row{
			truncate(c.Key, 64),
			humanize.IBytes(uint64(c.SizeBytes)),
			formatTime(c.LastModified),
			c.AgeDays,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("   %d of %d objects selected, %s reclaimable\n",
		len(plan.Candidates), plan.Examined, humanize.IBytes(uint64(plan.ReclaimableBytes)))

	switch input.CleanMode() {
	case "apply":
		fmt.Println("   " + text.FgRed.Sprintf("Deleted %d object(s).", input.Removed))
	case "apply-simulated":
		fmt.Println("   " + text.FgYellow.Sprintf("Simulated delete of %d object(s); canned data was not touched.", input.Removed))
	default:
		fmt.Println("   " + text.FgCyan.Sprint("Dry run; nothing was deleted. Re-run with --apply to delete."))
	}
}

func formatCleanMode(mode string) string {
	switch mode {
	case "apply":
		return text.FgRed.Sprint("APPLY")
	case "apply-simulated":
		return text.FgYellow.Sprint("APPLY (simulated)")
	default:
		return text.FgCyan.Sprint("DRY-RUN")
	}
}

// DrawLogTable renders a ranked log analysis.
func DrawLogTable(input model.RenderLogInput) {
	report := input.Report

	fmt.Println("\n📜 Log Analysis")
	window := "no time filter"
	if report.SinceMin > 0 {
		window = fmt.Sprintf("last %d min", report.SinceMin)
	}
	fmt.Println("   " + text.FgHiBlack.Sprintf("%s (%s)", report.Path, window))

	fmt.Printf("   ")
	for _, sev := range logscan.Severities {
		if n := report.Counts[sev]; n > 0 {
			fmt.Printf("%s ", formatSeverityCount(sev, n))
		}
	}
	fmt.Println()

	if len(report.Groups) == 0 {
		fmt.Printf("   No entries matched (%d lines read).\n", report.LinesRead)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Severity", "Count", "Score", "Message", "First Seen", "Last Seen"})

	for i, g := range report.Groups {
		t.AppendRow(table.Row{
			i + 1,
			formatSeverity(g.Severity),
			g.Count,
			g.Score,
			truncate(g.Sample, 56),
			formatTime(g.First),
			formatTime(g.Last),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("   %d lines read, %d entries parsed, %d in window, %d groups (top %d shown)\n",
		report.LinesRead, report.Parsed, report.Matched, report.TotalGroups, len(report.Groups))
}

func formatSeverityCount(sev string, n int) string {
	switch sev {
	case logscan.SeverityFatal:
		return text.FgRed.Sprintf("🔴 %d FATAL", n)
	case logscan.SeverityError:
		return text.FgHiRed.Sprintf("🟠 %d ERROR", n)
	case logscan.SeverityWarn:
		return text.FgYellow.Sprintf("🟡 %d WARN", n)
	case logscan.SeverityInfo:
		return text.FgGreen.Sprintf("🟢 %d INFO", n)
	case logscan.SeverityDebug:
		return text.FgCyan.Sprintf("🔵 %d DEBUG", n)
	default:
		return text.FgHiBlack.Sprintf("⚪ %d UNKNOWN", n)
	}
}

func formatSeverity(sev string) string {
	switch sev {
	case logscan.SeverityFatal:
		return text.FgRed.Sprint("FATAL")
	case logscan.SeverityError:
		return text.FgHiRed.Sprint("ERROR")
	case logscan.SeverityWarn:
		return text.FgYellow.Sprint("WARN")
	case logscan.SeverityInfo:
		return text.FgGreen.Sprint("INFO")
	case logscan.SeverityDebug:
		return text.FgCyan.Sprint("DEBUG")
	default:
		return text.FgHiBlack.Sprint("UNKNOWN")
	}
}

// DrawDoctorTable renders the environment diagnosis.
func DrawDoctorTable(report doctor.Report) {
	fmt.Println("\n🔧 Environment Doctor")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})

	for _, c := range report.Checks {
		t.AppendRow(table.Row{c.Name, formatCheckStatus(c.Status), truncate(c.Detail, 72)})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fails := report.FailCount()
	warns := report.WarnCount()
	switch {
	case fails > 0:
		fmt.Println("   " + text.FgRed.Sprintf("%d check(s) failing.", fails))
	case warns > 0:
		fmt.Println("   " + text.FgYellow.Sprintf("Environment usable, %d warning(s).", warns))
	default:
		fmt.Println("   " + text.FgGreen.Sprint("Environment OK."))
	}
}

func formatCheckStatus(status string) string {
	switch status {
	case doctor.StatusOK:
		return text.FgGreen.Sprint("✅ ok")
	case doctor.StatusWarn:
		return text.FgYellow.Sprint("⚠️  warn")
	default:
		return text.FgRed.Sprint("❌ fail")
	}
}

func formatState(state string) string {
	switch state {
	case "running":
		return text.FgGreen.Sprint(state)
	case "pending", "stopping", "shutting-down":
		return text.FgYellow.Sprint(state)
	case "stopped":
		return text.FgHiRed.Sprint(state)
	case "terminated":
		return text.FgRed.Sprint(state)
	default:
		return state
	}
}

func formatVerdict(verdict string) string {
	switch verdict {
	case instances.VerdictHealthy:
		return text.FgGreen.Sprint("🟢 healthy")
	case instances.VerdictInitializing:
		return text.FgCyan.Sprint("🔵 initializing")
	case instances.VerdictImpaired:
		return text.FgRed.Sprint("🔴 impaired")
	case instances.VerdictNotRunning:
		return text.FgYellow.Sprint("🟡 not-running")
	default:
		return text.FgHiBlack.Sprint("⚪ unknown")
	}
}

func drawScopeLine(profile, region, source string) {
	var scope []string
	if profile != "" {
		scope = append(scope, "profile "+profile)
	}
	if region != "" {
		scope = append(scope, "region "+region)
	}
	scope = append(scope, "source "+source)
	fmt.Println("   " + text.FgHiBlack.Sprint(strings.Join(scope, "  |  ")))
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen-3] + "..."
}
