// Package doctor inspects the local environment and reports whether mock
// and live runs can work. Every probe is read-only.
package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"golang.org/x/term"
)

// Check statuses. A warn degrades one mode; a fail means the default mode
// is unusable.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Check is one environment probe result.
type Check struct {
	Name   string
	Status string
	Detail string
}

// Report aggregates all checks in probe order.
type Report struct {
	Checks []Check
}

// FailCount returns the number of failing checks.
func (r Report) FailCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			n++
		}
	}
	return n
}

// WarnCount returns the number of warning checks.
func (r Report) WarnCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusWarn {
			n++
		}
	}
	return n
}

// Service is the interface for environment diagnosis.
type Service interface {
	Diagnose() Report
}

type service struct {
	awsBin     string
	fixtureDir string
	fixtures   []string
}

// NewService creates a doctor service probing the given AWS CLI binary and
// fixture store.
func NewService(awsBin, fixtureDir string, fixtures []string) Service {
	return &service{awsBin: awsBin, fixtureDir: fixtureDir, fixtures: fixtures}
}

// Probe seams, replaced in tests.
var (
	lookPath                = exec.LookPath
	loadSharedConfigProfile = config.LoadSharedConfigProfile
	awsVersion              = awsVersionOutput
)

func (s *service) Diagnose() Report {
	var r Report
	r.Checks = append(r.Checks, s.checkAWSCLI())
	r.Checks = append(r.Checks, s.checkSharedConfig())
	r.Checks = append(r.Checks, s.checkProfile())
	r.Checks = append(r.Checks, s.checkFixtures()...)
	r.Checks = append(r.Checks, s.checkTerminal())
	return r
}

func (s *service) checkAWSCLI() Check {
	path, err := lookPath(s.awsBin)
	if err != nil {
		return Check{
			Name:   "aws cli",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%q not found on PATH; live mode unavailable", s.awsBin),
		}
	}

	version, err := awsVersion(path)
	if err != nil {
		return Check{
			Name:   "aws cli",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%s (version probe failed: %v)", path, err),
		}
	}

	return Check{Name: "aws cli", Status: StatusOK, Detail: fmt.Sprintf("%s (%s)", path, version)}
}

func awsVersionOutput(path string) (string, error) {
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

func (s *service) checkSharedConfig() Check {
	var present, missing []string
	for _, f := range []string{config.DefaultSharedConfigFilename(), config.DefaultSharedCredentialsFilename()} {
		if _, err := os.Stat(f); err == nil {
			present = append(present, filepath.Base(f))
		} else {
			missing = append(missing, filepath.Base(f))
		}
	}

	if len(present) == 0 {
		return Check{Name: "aws shared config", Status: StatusWarn, Detail: "no config or credentials file under ~/.aws"}
	}
	if len(missing) > 0 {
		return Check{
			Name:   "aws shared config",
			Status: StatusOK,
			Detail: fmt.Sprintf("%s present, %s absent", strings.Join(present, ", "), strings.Join(missing, ", ")),
		}
	}
	return Check{Name: "aws shared config", Status: StatusOK, Detail: strings.Join(present, ", ") + " present"}
}

func (s *service) checkProfile() Check {
	profile := strings.TrimSpace(os.Getenv("AWS_PROFILE"))
	if profile == "" {
		return Check{Name: "aws profile", Status: StatusOK, Detail: "AWS_PROFILE not set; default profile applies"}
	}

	if _, err := loadSharedConfigProfile(context.Background(), profile); err != nil {
		return Check{
			Name:   "aws profile",
			Status: StatusWarn,
			Detail: fmt.Sprintf("AWS_PROFILE=%s not resolvable: %v", profile, err),
		}
	}

	return Check{Name: "aws profile", Status: StatusOK, Detail: "AWS_PROFILE=" + profile}
}

func (s *service) checkFixtures() []Check {
	info, err := os.Stat(s.fixtureDir)
	if err != nil || !info.IsDir() {
		return []Check{{
			Name:   "fixture store",
			Status: StatusFail,
			Detail: fmt.Sprintf("directory %q not found; mock mode has no data", s.fixtureDir),
		}}
	}

	checks := []Check{{Name: "fixture store", Status: StatusOK, Detail: s.fixtureDir}}
	for _, name := range s.fixtures {
		checks = append(checks, s.checkFixtureFile(name))
	}
	return checks
}

func (s *service) checkFixtureFile(name string) Check {
	data, err := os.ReadFile(filepath.Join(s.fixtureDir, name))
	if err != nil {
		return Check{Name: "fixture " + name, Status: StatusFail, Detail: "missing"}
	}
	if !json.Valid(data) {
		return Check{Name: "fixture " + name, Status: StatusFail, Detail: "not valid JSON"}
	}
	return Check{Name: "fixture " + name, Status: StatusOK, Detail: fmt.Sprintf("%d bytes", len(data))}
}

func (s *service) checkTerminal() Check {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return Check{Name: "terminal", Status: StatusOK, Detail: "stdout is not a terminal"}
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		return Check{Name: "terminal", Status: StatusOK, Detail: "size unavailable"}
	}
	return Check{Name: "terminal", Status: StatusOK, Detail: fmt.Sprintf("%dx%d", w, h)}
}
