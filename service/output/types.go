package output

import (
	"github.com/vguler/aws-ops-toolkit/model"
	jsonoutput "github.com/vguler/aws-ops-toolkit/shared/json_output"
	"github.com/vguler/aws-ops-toolkit/shared/tables"
)

// Renderer defines the interface for drawing command results.
type Renderer interface {
	DrawInstancesTable(input model.RenderInstancesInput)
	DrawHealthTable(input model.RenderHealthInput)
	DrawCleanTable(input model.RenderCleanInput)
	DrawLogTable(input model.RenderLogInput)
	OutputInstancesJSON(input model.RenderInstancesInput) error
	OutputHealthJSON(input model.RenderHealthInput) error
	OutputCleanJSON(input model.RenderCleanInput) error
	OutputLogJSON(input model.RenderLogInput) error
}

type realRenderer struct{}

func (r *realRenderer) DrawInstancesTable(input model.RenderInstancesInput) {
	tables.DrawInstancesTable(input)
}

func (r *realRenderer) DrawHealthTable(input model.RenderHealthInput) {
	tables.DrawHealthTable(input)
}

func (r *realRenderer) DrawCleanTable(input model.RenderCleanInput) {
	tables.DrawCleanTable(input)
}

func (r *realRenderer) DrawLogTable(input model.RenderLogInput) {
	tables.DrawLogTable(input)
}

func (r *realRenderer) OutputInstancesJSON(input model.RenderInstancesInput) error {
	return jsonoutput.OutputInstancesJSON(input)
}

func (r *realRenderer) OutputHealthJSON(input model.RenderHealthInput) error {
	return jsonoutput.OutputHealthJSON(input)
}

func (r *realRenderer) OutputCleanJSON(input model.RenderCleanInput) error {
	return jsonoutput.OutputCleanJSON(input)
}

func (r *realRenderer) OutputLogJSON(input model.RenderLogInput) error {
	return jsonoutput.OutputLogJSON(input)
}

// service is the internal implementation
type service struct {
	format   model.Format
	renderer Renderer
}

// Service defines the interface for output operations.
type Service interface {
	RenderInstances(input model.RenderInstancesInput) error
	RenderHealth(input model.RenderHealthInput) error
	RenderClean(input model.RenderCleanInput) error
	RenderLogs(input model.RenderLogInput) error
}
