package model

import (
	"github.com/vguler/aws-ops-toolkit/service/cleaner"
	"github.com/vguler/aws-ops-toolkit/service/instances"
	"github.com/vguler/aws-ops-toolkit/service/logscan"
)

// RenderInstancesInput carries one instance listing run.
type RenderInstancesInput struct {
	Profile     string
	Region      string
	Source      string
	StateFilter string
	Result      instances.ListResult
}

// RenderHealthInput carries one health assessment run.
type RenderHealthInput struct {
	Profile string
	Region  string
	Source  string
	Result  instances.HealthResult
}

// RenderCleanInput carries one cleanup run. Simulated marks an apply that
// ran against canned data; Removed stays zero on dry runs.
type RenderCleanInput struct {
	Profile   string
	Region    string
	Source    string
	Apply     bool
	Simulated bool
	Plan      cleaner.PlanResult
	Removed   int
}

// CleanMode names the effective cleanup mode for presentation.
func (i RenderCleanInput) CleanMode() string {
	switch {
	case !i.Apply:
		return "dry-run"
	case i.Simulated:
		return "apply-simulated"
	default:
		return "apply"
	}
}

// RenderLogInput carries one log analysis run.
type RenderLogInput struct {
	Report logscan.Report
}

// InstancesReportJSON is the structured output for an instance listing.
type InstancesReportJSON struct {
	Profile     string         `json:"profile,omitempty"`
	Region      string         `json:"region,omitempty"`
	Source      string         `json:"source"`
	StateFilter string         `json:"state_filter"`
	Total       int            `json:"total"`
	Matched     int            `json:"matched"`
	StateCounts map[string]int `json:"state_counts"`
	Instances   []InstanceJSON `json:"instances"`
}

// InstanceJSON is one listed instance.
type InstanceJSON struct {
	InstanceID       string `json:"instance_id"`
	Name             string `json:"name,omitempty"`
	Type             string `json:"type"`
	State            string `json:"state"`
	AvailabilityZone string `json:"availability_zone,omitempty"`
	PublicIP         string `json:"public_ip,omitempty"`
	PrivateIP        string `json:"private_ip,omitempty"`
	LaunchTime       string `json:"launch_time,omitempty"`
}

// HealthReportJSON is the structured output for a health assessment.
type HealthReportJSON struct {
	Profile       string         `json:"profile,omitempty"`
	Region        string         `json:"region,omitempty"`
	Source        string         `json:"source"`
	Total         int            `json:"total"`
	HasImpairment bool           `json:"has_impairment"`
	VerdictCounts map[string]int `json:"verdict_counts"`
	Instances     []HealthJSON   `json:"instances"`
}

// HealthJSON is one assessed instance.
type HealthJSON struct {
	InstanceID       string   `json:"instance_id"`
	AvailabilityZone string   `json:"availability_zone,omitempty"`
	State            string   `json:"state"`
	SystemStatus     string   `json:"system_status"`
	InstanceStatus   string   `json:"instance_status"`
	Verdict          string   `json:"verdict"`
	Events           []string `json:"events,omitempty"`
}

// CleanReportJSON is the structured output for a cleanup run.
type CleanReportJSON struct {
	Profile          string               `json:"profile,omitempty"`
	Region           string               `json:"region,omitempty"`
	Source           string               `json:"source"`
	Bucket           string               `json:"bucket"`
	Prefix           string               `json:"prefix,omitempty"`
	OlderThanDays    int                  `json:"older_than_days"`
	Mode             string               `json:"mode"`
	Examined         int                  `json:"objects_examined"`
	CandidateCount   int                  `json:"candidate_count"`
	ReclaimableBytes int64                `json:"reclaimable_bytes"`
	RemovedCount     int                  `json:"removed_count"`
	Candidates       []CleanCandidateJSON `json:"candidates"`
}

// CleanCandidateJSON is one object selected for removal.
type CleanCandidateJSON struct {
	Key          string `json:"key"`
	SizeBytes    int64  `json:"size_bytes"`
	LastModified string `json:"last_modified"`
	AgeDays      int    `json:"age_days"`
}

// LogReportJSON is the structured output for a log analysis.
type LogReportJSON struct {
	Path           string         `json:"path"`
	SinceMin       int            `json:"since_min"`
	LinesRead      int            `json:"lines_read"`
	EntriesParsed  int            `json:"entries_parsed"`
	EntriesMatched int            `json:"entries_matched"`
	SeverityCounts map[string]int `json:"severity_counts"`
	GroupsTotal    int            `json:"groups_total"`
	Groups         []LogGroupJSON `json:"groups"`
}

// LogGroupJSON is one ranked entry group.
type LogGroupJSON struct {
	Rank      int    `json:"rank"`
	Severity  string `json:"severity"`
	Count     int    `json:"count"`
	Score     int    `json:"score"`
	Signature string `json:"signature"`
	Sample    string `json:"sample"`
	FirstSeen string `json:"first_seen,omitempty"`
	LastSeen  string `json:"last_seen,omitempty"`
}
