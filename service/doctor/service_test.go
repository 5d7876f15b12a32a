package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
)

var fixtureSet = []string{"ec2_instances.json", "ec2_status.json", "s3_objects.json"}

func stubCLI(t *testing.T, path string, lookErr error, version string, versionErr error) {
	t.Helper()
	oldLook, oldVersion := lookPath, awsVersion
	lookPath = func(string) (string, error) {
		if lookErr != nil {
			return "", lookErr
		}
		return path, nil
	}
	awsVersion = func(string) (string, error) {
		return version, versionErr
	}
	t.Cleanup(func() { lookPath, awsVersion = oldLook, oldVersion })
}

func stubProfileLoader(t *testing.T, err error) {
	t.Helper()
	old := loadSharedConfigProfile
	loadSharedConfigProfile = func(context.Context, string, ...func(*config.LoadSharedConfigOptions)) (config.SharedConfig, error) {
		return config.SharedConfig{}, err
	}
	t.Cleanup(func() { loadSharedConfigProfile = old })
}

func seedFixtures(t *testing.T, names []string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(`{"ok":true}`), 0o644); err != nil {
			t.Fatalf("failed to seed fixture %s: %v", n, err)
		}
	}
	return dir
}

func findCheck(t *testing.T, r Report, name string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %+v", name, r.Checks)
	return Check{}
}

func TestDiagnoseHealthyEnvironment(t *testing.T) {
	stubCLI(t, "/opt/aws-cli/aws", nil, "aws-cli/2.17.0 Python/3.11.8", nil)
	t.Setenv("AWS_PROFILE", "")
	dir := seedFixtures(t, fixtureSet)

	report := NewService("aws", dir, fixtureSet).Diagnose()

	if n := report.FailCount(); n != 0 {
		t.Fatalf("expected no failing checks, got %d: %+v", n, report.Checks)
	}

	cli := findCheck(t, report, "aws cli")
	if cli.Status != StatusOK || !strings.Contains(cli.Detail, "aws-cli/2.17.0") {
		t.Fatalf("unexpected cli check: %+v", cli)
	}

	store := findCheck(t, report, "fixture store")
	if store.Status != StatusOK || store.Detail != dir {
		t.Fatalf("unexpected store check: %+v", store)
	}
}

func TestDiagnoseWarnsWithoutCLI(t *testing.T) {
	stubCLI(t, "", errors.New("not found"), "", nil)
	dir := seedFixtures(t, fixtureSet)

	report := NewService("aws", dir, fixtureSet).Diagnose()

	cli := findCheck(t, report, "aws cli")
	if cli.Status != StatusWarn {
		t.Fatalf("missing CLI should warn, got %+v", cli)
	}
	if !strings.Contains(cli.Detail, "live mode unavailable") {
		t.Fatalf("detail should name the consequence: %+v", cli)
	}
	if report.FailCount() != 0 {
		t.Fatalf("a missing CLI alone must not fail the doctor: %+v", report.Checks)
	}
}

func TestDiagnoseWarnsOnVersionProbeFailure(t *testing.T) {
	stubCLI(t, "/opt/aws-cli/aws", nil, "", errors.New("exec format error"))
	dir := seedFixtures(t, fixtureSet)

	report := NewService("aws", dir, fixtureSet).Diagnose()

	cli := findCheck(t, report, "aws cli")
	if cli.Status != StatusWarn || !strings.Contains(cli.Detail, "version probe failed") {
		t.Fatalf("unexpected cli check: %+v", cli)
	}
}

func TestDiagnoseFailsWithoutFixtureStore(t *testing.T) {
	stubCLI(t, "/opt/aws-cli/aws", nil, "aws-cli/2.17.0", nil)
	missing := filepath.Join(t.TempDir(), "nowhere")

	report := NewService("aws", missing, fixtureSet).Diagnose()

	store := findCheck(t, report, "fixture store")
	if store.Status != StatusFail || !strings.Contains(store.Detail, "mock mode has no data") {
		t.Fatalf("unexpected store check: %+v", store)
	}
	if report.FailCount() == 0 {
		t.Fatalf("a missing store must fail the doctor")
	}
}

func TestDiagnoseFlagsBrokenFixtures(t *testing.T) {
	stubCLI(t, "/opt/aws-cli/aws", nil, "aws-cli/2.17.0", nil)
	dir := seedFixtures(t, fixtureSet[:1])
	if err := os.WriteFile(filepath.Join(dir, fixtureSet[1]), []byte("not json"), 0o644); err != nil {
		t.Fatalf("failed to seed broken fixture: %v", err)
	}

	report := NewService("aws", dir, fixtureSet).Diagnose()

	good := findCheck(t, report, "fixture "+fixtureSet[0])
	if good.Status != StatusOK {
		t.Fatalf("valid fixture should pass: %+v", good)
	}

	broken := findCheck(t, report, "fixture "+fixtureSet[1])
	if broken.Status != StatusFail || broken.Detail != "not valid JSON" {
		t.Fatalf("unexpected broken fixture check: %+v", broken)
	}

	absent := findCheck(t, report, "fixture "+fixtureSet[2])
	if absent.Status != StatusFail || absent.Detail != "missing" {
		t.Fatalf("unexpected absent fixture check: %+v", absent)
	}

	if report.FailCount() != 2 {
		t.Fatalf("expected 2 failing checks, got %d", report.FailCount())
	}
}

func TestCheckProfile(t *testing.T) {
	svc := &service{}

	t.Setenv("AWS_PROFILE", "")
	c := svc.checkProfile()
	if c.Status != StatusOK || !strings.Contains(c.Detail, "default profile applies") {
		t.Fatalf("unset profile should pass: %+v", c)
	}

	t.Setenv("AWS_PROFILE", "ghost")
	stubProfileLoader(t, errors.New("failed to get shared config profile, ghost"))
	c = svc.checkProfile()
	if c.Status != StatusWarn || !strings.Contains(c.Detail, "ghost") {
		t.Fatalf("unresolvable profile should warn: %+v", c)
	}

	stubProfileLoader(t, nil)
	c = svc.checkProfile()
	if c.Status != StatusOK || c.Detail != "AWS_PROFILE=ghost" {
		t.Fatalf("resolvable profile should pass: %+v", c)
	}
}

func TestReportCounts(t *testing.T) {
	r := Report{Checks: []Check{
		{Status: StatusOK},
		{Status: StatusWarn},
		{Status: StatusWarn},
		{Status: StatusFail},
	}}

	if r.FailCount() != 1 {
		t.Fatalf("FailCount = %d, want 1", r.FailCount())
	}
	if r.WarnCount() != 2 {
		t.Fatalf("WarnCount = %d, want 2", r.WarnCount())
	}
}
