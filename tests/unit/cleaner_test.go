// Package tests contains unit tests for the S3 cleanup planner.
package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vguler/aws-ops-toolkit/service/cleaner"
)

// TestPlanCutoffBoundaries tests candidate selection around the age cutoff
func TestPlanCutoffBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastModified string
		olderThan    int
		selected     bool
	}{
		{
			name:         "well past the cutoff",
			lastModified: "2026-01-01T00:00:00Z",
			olderThan:    30,
			selected:     true,
		},
		{
			name:         "one second before the cutoff",
			lastModified: "2026-07-26T11:59:59Z",
			olderThan:    30,
			selected:     true,
		},
		{
			name:         "exactly at the cutoff",
			lastModified: "2026-07-26T12:00:00Z",
			olderThan:    30,
			selected:     false,
		},
		{
			name:         "newer than the cutoff",
			lastModified: "2026-08-24T00:00:00Z",
			olderThan:    30,
			selected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"Contents":[{"Key":"k","LastModified":"` + tt.lastModified + `","Size":1}]}`

			plan, err := cleaner.Plan(strings.NewReader(doc), "b", "", tt.olderThan, now)
			assert.NoError(t, err)
			assert.Equal(t, 1, plan.Examined)

			if tt.selected {
				assert.Len(t, plan.Candidates, 1)
			} else {
				assert.Empty(t, plan.Candidates)
			}
		})
	}
}

// TestPlanTotals tests the aggregate fields of a cleanup plan
func TestPlanTotals(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	doc := `{"Contents":[
		{"Key":"a","LastModified":"2026-01-01T00:00:00Z","Size":400},
		{"Key":"b","LastModified":"2026-02-01T00:00:00Z","Size":600},
		{"Key":"c","LastModified":"2026-08-24T00:00:00Z","Size":9999}
	]}`

	plan, err := cleaner.Plan(strings.NewReader(doc), "b", "", 30, now)
	assert.NoError(t, err)

	assert.Equal(t, 3, plan.Examined)
	assert.Equal(t, []string{"a", "b"}, plan.Keys())
	assert.Equal(t, int64(1000), plan.ReclaimableBytes)
}

// TestSimulatedRemoverLeavesDataAlone tests that simulated removal only records
func TestSimulatedRemoverLeavesDataAlone(t *testing.T) {
	rm := cleaner.NewSimulatedRemover()

	err := rm.Remove(context.Background(), "archive", []string{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rm.Removed)
}
