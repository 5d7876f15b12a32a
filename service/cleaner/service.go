// Package cleaner plans and performs age-based S3 object cleanup from a
// list-objects document in the shape the AWS CLI prints.
package cleaner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Candidate is one object selected for removal.
type Candidate struct {
	Key          string
	SizeBytes    int64
	LastModified time.Time
	AgeDays      int
}

// PlanResult aggregates the cleanup plan for one bucket. Candidates keeps
// document order.
type PlanResult struct {
	Bucket           string
	Prefix           string
	OlderThanDays    int
	Cutoff           time.Time
	Examined         int
	Candidates       []Candidate
	ReclaimableBytes int64
}

// Keys returns the candidate object keys in plan order.
func (p PlanResult) Keys() []string {
	keys := make([]string, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		keys = append(keys, c.Key)
	}
	return keys
}

type listObjectsDoc struct {
	Contents []s3types.Object
}

// Plan decodes a list-objects document and selects the objects last
// modified strictly before now minus the day threshold, narrowed by the
// key prefix when one is given. Objects without a modification time are
// never selected.
func Plan(r io.Reader, bucket, prefix string, olderThanDays int, now time.Time) (PlanResult, error) {
	var doc listObjectsDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return PlanResult{}, fmt.Errorf("failed to decode object listing: %w", err)
	}

	cutoff := now.Add(-time.Duration(olderThanDays) * 24 * time.Hour)
	result := PlanResult{
		Bucket:        bucket,
		Prefix:        prefix,
		OlderThanDays: olderThanDays,
		Cutoff:        cutoff,
	}

	for _, obj := range doc.Contents {
		result.Examined++

		key := aws.ToString(obj.Key)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}

		modified := aws.ToTime(obj.LastModified)
		if modified.IsZero() || !modified.Before(cutoff) {
			continue
		}

		size := aws.ToInt64(obj.Size)
		result.Candidates = append(result.Candidates, Candidate{
			Key:          key,
			SizeBytes:    size,
			LastModified: modified,
			AgeDays:      int(now.Sub(modified).Hours() / 24),
		})
		result.ReclaimableBytes += size
	}

	return result, nil
}

// Remover deletes planned objects from a bucket.
type Remover interface {
	Remove(ctx context.Context, bucket string, keys []string) error
}

// BatchRunner executes one AWS CLI invocation and returns its stdout. The
// live remover issues its delete batches through it.
type BatchRunner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// deleteBatchSize is the DeleteObjects API limit per call.
const deleteBatchSize = 1000

// NewLiveRemover creates a Remover that deletes objects through the AWS CLI.
func NewLiveRemover(runner BatchRunner) Remover {
	return &liveRemover{runner: runner}
}

type liveRemover struct {
	runner BatchRunner
}

type deletePayload struct {
	Objects []deleteKey `json:"Objects"`
	Quiet   bool        `json:"Quiet"`
}

type deleteKey struct {
	Key string `json:"Key"`
}

func (d *liveRemover) Remove(ctx context.Context, bucket string, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		payload := deletePayload{Quiet: true}
		for _, k := range keys[start:end] {
			payload.Objects = append(payload.Objects, deleteKey{Key: k})
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode delete batch: %w", err)
		}

		args := []string{"s3api", "delete-objects", "--bucket", bucket, "--delete", string(body)}
		if _, err := d.runner.Run(ctx, args); err != nil {
			return fmt.Errorf("delete batch starting at %q failed: %w", keys[start], err)
		}
	}

	return nil
}

// NewSimulatedRemover creates a Remover that touches nothing and records
// what it was asked to delete.
func NewSimulatedRemover() *SimulatedRemover {
	return &SimulatedRemover{}
}

// SimulatedRemover satisfies Remover for runs backed by canned data.
type SimulatedRemover struct {
	Removed []string
}

func (s *SimulatedRemover) Remove(_ context.Context, _ string, keys []string) error {
	s.Removed = append(s.Removed, keys...)
	return nil
}
