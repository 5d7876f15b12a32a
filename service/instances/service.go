// Package instances analyzes EC2 inventory and status documents in the
// shape the AWS CLI prints for describe-instances and
// describe-instance-status.
package instances

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// StateAll disables state filtering.
const StateAll = "all"

// InstanceStates lists the EC2 lifecycle states accepted as a filter.
var InstanceStates = []string{"pending", "running", "shutting-down", "terminated", "stopping", "stopped"}

// ValidStateFilter reports whether s is StateAll or a known lifecycle state.
func ValidStateFilter(s string) bool {
	if s == StateAll {
		return true
	}
	for _, known := range InstanceStates {
		if s == known {
			return true
		}
	}
	return false
}

// Summary is one listed instance.
type Summary struct {
	InstanceID string
	Name       string
	Type       string
	State      string
	AZ         string
	PublicIP   string
	PrivateIP  string
	LaunchTime time.Time
}

// ListResult aggregates an instance listing. Instances holds the filtered
// summaries in document order; Counts covers every instance in the
// document regardless of the filter.
type ListResult struct {
	Instances []Summary
	Counts    map[string]int
	Examined  int
}

type describeInstancesDoc struct {
	Reservations []struct {
		Instances []ec2types.Instance
	}
}

// List decodes a describe-instances document and summarizes each instance,
// preserving document order. stateFilter narrows the listing to one
// lifecycle state; StateAll passes everything.
func List(r io.Reader, stateFilter string) (ListResult, error) {
	var doc describeInstancesDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ListResult{}, fmt.Errorf("failed to decode instance listing: %w", err)
	}

	result := ListResult{Counts: map[string]int{}}

	for _, res := range doc.Reservations {
		for _, inst := range res.Instances {
			state := stateOf(inst.State)
			result.Examined++
			result.Counts[state]++

			if stateFilter != StateAll && state != stateFilter {
				continue
			}

			result.Instances = append(result.Instances, Summary{
				InstanceID: aws.ToString(inst.InstanceId),
				Name:       nameTag(inst.Tags),
				Type:       string(inst.InstanceType),
				State:      state,
				AZ:         azOf(inst.Placement),
				PublicIP:   aws.ToString(inst.PublicIpAddress),
				PrivateIP:  aws.ToString(inst.PrivateIpAddress),
				LaunchTime: aws.ToTime(inst.LaunchTime),
			})
		}
	}

	return result, nil
}

func stateOf(state *ec2types.InstanceState) string {
	if state == nil || state.Name == "" {
		return "unknown"
	}
	return string(state.Name)
}

func azOf(placement *ec2types.Placement) string {
	if placement == nil {
		return ""
	}
	return aws.ToString(placement.AvailabilityZone)
}

func nameTag(tags []ec2types.Tag) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == "Name" {
			return aws.ToString(t.Value)
		}
	}
	return ""
}

// Health verdicts, worst findings first in summaries.
const (
	VerdictHealthy      = "healthy"
	VerdictInitializing = "initializing"
	VerdictImpaired     = "impaired"
	VerdictNotRunning   = "not-running"
	VerdictUnknown      = "unknown"
)

// HealthRecord is the assessed status of one instance.
type HealthRecord struct {
	InstanceID     string
	AZ             string
	State          string
	SystemStatus   string
	InstanceStatus string
	Verdict        string
	Events         []string
}

// HealthResult aggregates a health assessment in document order.
type HealthResult struct {
	Records []HealthRecord
	Counts  map[string]int
}

// HasImpairment reports whether any instance was assessed impaired.
func (h HealthResult) HasImpairment() bool {
	return h.Counts[VerdictImpaired] > 0
}

type describeStatusDoc struct {
	InstanceStatuses []ec2types.InstanceStatus
}

// Health decodes a describe-instance-status document and assigns each
// instance a verdict from its lifecycle state and the system and instance
// status checks. Pending scheduled events are surfaced per instance.
func Health(r io.Reader) (HealthResult, error) {
	var doc describeStatusDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return HealthResult{}, fmt.Errorf("failed to decode instance status: %w", err)
	}

	result := HealthResult{Counts: map[string]int{}}

	for _, st := range doc.InstanceStatuses {
		rec := HealthRecord{
			InstanceID:     aws.ToString(st.InstanceId),
			AZ:             aws.ToString(st.AvailabilityZone),
			State:          stateOf(st.InstanceState),
			SystemStatus:   checkStatus(st.SystemStatus),
			InstanceStatus: checkStatus(st.InstanceStatus),
			Events:         pendingEvents(st.Events),
		}
		rec.Verdict = verdictFor(rec.State, rec.SystemStatus, rec.InstanceStatus)

		result.Records = append(result.Records, rec)
		result.Counts[rec.Verdict]++
	}

	return result, nil
}

func checkStatus(s *ec2types.InstanceStatusSummary) string {
	if s == nil {
		return string(ec2types.SummaryStatusNotApplicable)
	}
	return string(s.Status)
}

func pendingEvents(events []ec2types.InstanceStatusEvent) []string {
	var out []string
	for _, ev := range events {
		desc := aws.ToString(ev.Description)
		// completed events keep their code but are prefixed by EC2
		if strings.HasPrefix(desc, "[Completed]") || strings.HasPrefix(desc, "[Canceled]") {
			continue
		}
		label := string(ev.Code)
		if desc != "" {
			label = fmt.Sprintf("%s: %s", label, desc)
		}
		if ev.NotBefore != nil {
			label = fmt.Sprintf("%s (from %s)", label, ev.NotBefore.UTC().Format("2006-01-02"))
		}
		out = append(out, label)
	}
	return out
}

func verdictFor(state, system, instance string) string {
	if state != string(ec2types.InstanceStateNameRunning) {
		return VerdictNotRunning
	}

	ok := string(ec2types.SummaryStatusOk)
	impaired := string(ec2types.SummaryStatusImpaired)
	initializing := string(ec2types.SummaryStatusInitializing)

	switch {
	case system == ok && instance == ok:
		return VerdictHealthy
	case system == impaired || instance == impaired:
		return VerdictImpaired
	case system == initializing || instance == initializing:
		return VerdictInitializing
	default:
		return VerdictUnknown
	}
}
