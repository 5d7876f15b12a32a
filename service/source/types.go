// Package source provides the data sources commands read from: canned
// fixture documents for mock runs and AWS CLI subprocesses for live runs.
package source

import (
	"context"
	"io"
	"os"
	"strings"
)

// Fixture file names served in mock mode. Each mirrors the JSON document
// the matching AWS CLI call would print.
const (
	FixtureEC2Instances   = "ec2_instances.json"
	FixtureInstanceStatus = "ec2_status.json"
	FixtureObjects        = "s3_objects.json"
)

// FixtureDirEnv overrides the fixture store directory.
const FixtureDirEnv = "AWS_OPS_TOOLKIT_FIXTURES"

// FixtureNames lists every fixture file a complete store contains.
func FixtureNames() []string {
	return []string{FixtureEC2Instances, FixtureInstanceStatus, FixtureObjects}
}

// DefaultFixtureDir returns the fixture store directory, honoring the
// AWS_OPS_TOOLKIT_FIXTURES override.
func DefaultFixtureDir() string {
	if dir := strings.TrimSpace(os.Getenv(FixtureDirEnv)); dir != "" {
		return dir
	}
	return "fixtures"
}

// Query describes one read request. Args is the AWS CLI argument vector a
// live source executes; Fixture is the file a mock source serves instead.
type Query struct {
	Args    []string
	Fixture string
}

// Service is the interface for obtaining command data. Callers consume the
// returned stream without knowing its provenance and must Close it; for
// live sources Close also reports the subprocess exit status.
type Service interface {
	Open(ctx context.Context, q Query) (io.ReadCloser, error)
	Origin(q Query) string
}
