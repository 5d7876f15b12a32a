// Package output provides a service for rendering command results to the
// console in the invocation's format.
package output

import (
	"github.com/vguler/aws-ops-toolkit/model"
)

// NewService creates a new output service with the specified format.
func NewService(format model.Format) Service {
	return &service{format: format, renderer: &realRenderer{}}
}

func (s *service) RenderInstances(input model.RenderInstancesInput) error {
	if s.format == model.FormatStructured {
		return s.renderer.OutputInstancesJSON(input)
	}
	s.renderer.DrawInstancesTable(input)
	return nil
}

func (s *service) RenderHealth(input model.RenderHealthInput) error {
	if s.format == model.FormatStructured {
		return s.renderer.OutputHealthJSON(input)
	}
	s.renderer.DrawHealthTable(input)
	return nil
}

func (s *service) RenderClean(input model.RenderCleanInput) error {
	if s.format == model.FormatStructured {
		return s.renderer.OutputCleanJSON(input)
	}
	s.renderer.DrawCleanTable(input)
	return nil
}

func (s *service) RenderLogs(input model.RenderLogInput) error {
	if s.format == model.FormatStructured {
		return s.renderer.OutputLogJSON(input)
	}
	s.renderer.DrawLogTable(input)
	return nil
}
