package jsonoutput

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vguler/aws-ops-toolkit/model"
)

// OutputInstancesJSON outputs an instance listing as JSON.
func OutputInstancesJSON(input model.RenderInstancesInput) error {
	return printJSON(BuildInstancesReport(input))
}

// BuildInstancesReport builds the instance listing report model. Reports
// carry no clock fields, so repeated runs over the same data match byte
// for byte.
func BuildInstancesReport(input model.RenderInstancesInput) model.InstancesReportJSON {
	report := model.InstancesReportJSON{
		Profile:     input.Profile,
		Region:      input.Region,
		Source:      input.Source,
		StateFilter: input.StateFilter,
		Total:       input.Result.Examined,
		Matched:     len(input.Result.Instances),
		StateCounts: input.Result.Counts,
	}

	for _, inst := range input.Result.Instances {
		j := model.InstanceJSON{
			InstanceID:       inst.InstanceID,
			Name:             inst.Name,
			Type:             inst.Type,
			State:            inst.State,
			AvailabilityZone: inst.AZ,
			PublicIP:         inst.PublicIP,
			PrivateIP:        inst.PrivateIP,
		}
		if !inst.LaunchTime.IsZero() {
			j.LaunchTime = inst.LaunchTime.UTC().Format(time.RFC3339)
		}
		report.Instances = append(report.Instances, j)
	}

	return report
}

// OutputHealthJSON outputs a health assessment as JSON.
func OutputHealthJSON(input model.RenderHealthInput) error {
	return printJSON(BuildHealthReport(input))
}

// BuildHealthReport builds the health assessment report model.
func BuildHealthReport(input model.RenderHealthInput) model.HealthReportJSON {
	report := model.HealthReportJSON{
		Profile:       input.Profile,
		Region:        input.Region,
		Source:        input.Source,
		Total:         len(input.Result.Records),
		HasImpairment: input.Result.HasImpairment(),
		VerdictCounts: input.Result.Counts,
	}

	for _, rec := range input.Result.Records {
		report.Instances = append(report.Instances, model.HealthJSON{
			InstanceID:       rec.InstanceID,
			AvailabilityZone: rec.AZ,
			State:            rec.State,
			SystemStatus:     rec.SystemStatus,
			InstanceStatus:   rec.InstanceStatus,
			Verdict:          rec.Verdict,
			Events:           rec.Events,
		})
	}

	return report
}

// OutputCleanJSON outputs a cleanup run as JSON.
func OutputCleanJSON(input model.RenderCleanInput) error {
	return printJSON(BuildCleanReport(input))
}

// BuildCleanReport builds the cleanup report model.
func BuildCleanReport(input model.RenderCleanInput) model.CleanReportJSON {
	plan := input.Plan
	report := model.CleanReportJSON{
		Profile:          input.Profile,
		Region:           input.Region,
		Source:           input.Source,
		Bucket:           plan.Bucket,
		Prefix:           plan.Prefix,
		OlderThanDays:    plan.OlderThanDays,
		Mode:             input.CleanMode(),
		Examined:         plan.Examined,
		CandidateCount:   len(plan.Candidates),
		ReclaimableBytes: plan.ReclaimableBytes,
		RemovedCount:     input.Removed,
	}

	for _, c := range plan.Candidates {
		report.Candidates = append(report.Candidates, model.CleanCandidateJSON{
			Key:          c.Key,
			SizeBytes:    c.SizeBytes,
			LastModified: c.LastModified.UTC().Format(time.RFC3339),
			AgeDays:      c.AgeDays,
		})
	}

	return report
}

// OutputLogJSON outputs a log analysis as JSON.
func OutputLogJSON(input model.RenderLogInput) error {
	return printJSON(BuildLogReport(input))
}

// BuildLogReport builds the log analysis report model.
func BuildLogReport(input model.RenderLogInput) model.LogReportJSON {
	r := input.Report
	report := model.LogReportJSON{
		Path:           r.Path,
		SinceMin:       r.SinceMin,
		LinesRead:      r.LinesRead,
		EntriesParsed:  r.Parsed,
		EntriesMatched: r.Matched,
		SeverityCounts: r.Counts,
		GroupsTotal:    r.TotalGroups,
	}

	for i, g := range r.Groups {
		j := model.LogGroupJSON{
			Rank:      i + 1,
			Severity:  g.Severity,
			Count:     g.Count,
			Score:     g.Score,
			Signature: g.Signature,
			Sample:    g.Sample,
		}
		if !g.First.IsZero() {
			j.FirstSeen = g.First.UTC().Format(time.RFC3339)
		}
		if !g.Last.IsZero() {
			j.LastSeen = g.Last.UTC().Format(time.RFC3339)
		}
		report.Groups = append(report.Groups, j)
	}

	return report
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))

	return nil
}
