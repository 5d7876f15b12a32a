package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vguler/aws-ops-toolkit/model"
)

// NewFixtureService creates a source that serves canned documents from dir.
func NewFixtureService(dir string) Service {
	return &fixtureSource{dir: dir}
}

type fixtureSource struct {
	dir string
}

func (s *fixtureSource) Open(_ context.Context, q Query) (io.ReadCloser, error) {
	path := filepath.Join(s.dir, q.Fixture)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, model.Envf("fixture %s not found in %s (set %s to relocate the store)", q.Fixture, s.dir, FixtureDirEnv)
		}
		return nil, fmt.Errorf("failed to stat fixture %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture %s: %w", path, err)
	}

	return f, nil
}

func (s *fixtureSource) Origin(q Query) string {
	return "fixture " + filepath.Join(s.dir, q.Fixture)
}
