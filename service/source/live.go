package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/vguler/aws-ops-toolkit/model"
)

// AWSBinEnv overrides the AWS CLI binary the live source executes.
const AWSBinEnv = "AWS_OPS_TOOLKIT_AWS_BIN"

// ResolveAWSBin returns the AWS CLI binary name, honoring the
// AWS_OPS_TOOLKIT_AWS_BIN override.
func ResolveAWSBin() string {
	if bin := strings.TrimSpace(os.Getenv(AWSBinEnv)); bin != "" {
		return bin
	}
	return "aws"
}

// Runner builds and executes AWS CLI invocations with the invocation's
// profile and region applied to every call.
type Runner struct {
	bin     string
	profile string
	region  string
}

// NewRunner resolves the AWS CLI binary on PATH and returns a Runner bound
// to it. A missing binary is an environment error, raised before any
// subprocess is spawned.
func NewRunner(profile, region string) (*Runner, error) {
	bin := ResolveAWSBin()

	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, model.Envf("AWS CLI binary %q not found on PATH (set %s to override)", bin, AWSBinEnv)
	}

	return &Runner{bin: resolved, profile: profile, region: region}, nil
}

// Bin returns the resolved binary path.
func (r *Runner) Bin() string { return r.bin }

// Command builds an exec.Cmd for the given AWS CLI arguments with JSON
// output forced and the profile/region selectors appended when set.
func (r *Runner) Command(ctx context.Context, args []string) *exec.Cmd {
	full := append([]string{}, args...)
	full = append(full, "--output", "json")

	if r.profile != "" {
		full = append(full, "--profile", r.profile)
	}
	if r.region != "" {
		full = append(full, "--region", r.region)
	}

	return exec.CommandContext(ctx, r.bin, full...)
}

// Run executes the AWS CLI with the given arguments and returns its stdout.
// A non-zero exit keeps the *exec.ExitError in the chain so callers can
// surface the child's status.
func (r *Runner) Run(ctx context.Context, args []string) ([]byte, error) {
	cmd := r.Command(ctx, args)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if tail := stderrTail(exitErr.Stderr); tail != "" {
				return nil, fmt.Errorf("aws %s failed: %s: %w", commandLabel(args), tail, err)
			}
		}
		return nil, fmt.Errorf("aws %s failed: %w", commandLabel(args), err)
	}

	return out, nil
}

// NewLiveService creates a source that streams documents from AWS CLI
// subprocesses built by the given runner.
func NewLiveService(runner *Runner) Service {
	return &liveSource{runner: runner}
}

type liveSource struct {
	runner *Runner
}

func (s *liveSource) Open(ctx context.Context, q Query) (io.ReadCloser, error) {
	cmd := s.runner.Command(ctx, q.Args)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", s.runner.bin, err)
	}

	return &liveReader{pipe: stdout, cmd: cmd, stderr: &stderr, label: commandLabel(q.Args)}, nil
}

func (s *liveSource) Origin(q Query) string {
	return s.runner.bin + " " + strings.Join(q.Args, " ")
}

// liveReader streams the child's stdout and reaps the child on Close. Close
// drains the pipe first, so a reader that stops early still leaves a clean
// exit status to report, and the child never blocks on a full pipe.
type liveReader struct {
	pipe   io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	label  string
	closed bool
	err    error
}

func (l *liveReader) Read(p []byte) (int, error) {
	return l.pipe.Read(p)
}

func (l *liveReader) Close() error {
	if l.closed {
		return l.err
	}
	l.closed = true

	_, _ = io.Copy(io.Discard, l.pipe)

	if err := l.cmd.Wait(); err != nil {
		if tail := stderrTail(l.stderr.Bytes()); tail != "" {
			l.err = fmt.Errorf("aws %s failed: %s: %w", l.label, tail, err)
		} else {
			l.err = fmt.Errorf("aws %s failed: %w", l.label, err)
		}
	}

	return l.err
}

// commandLabel names an invocation by its leading non-flag words, keeping
// error messages short.
func commandLabel(args []string) string {
	var words []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		words = append(words, a)
		if len(words) == 2 {
			break
		}
	}
	if len(words) == 0 {
		return strings.Join(args, " ")
	}
	return strings.Join(words, " ")
}

func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
