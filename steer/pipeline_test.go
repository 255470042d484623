package steer

import (
	"testing"
)

func TestPipelineDisabledProducesZeroDelta(t *testing.T) {
	pipeline := NewPipelineDefault()

	detections := []BoundingBox{
		NewBoundingBox(400, 300, 450, 350, 0.9, 0),
	}
	res, err := pipeline.Step(detections, Point{X: 0, Y: 0}, 1.0)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	// Selection still runs, movement does not
	if !res.HasTarget {
		t.Error("Expected a target even while disabled")
	}
	if res.Delta != (Point{}) {
		t.Errorf("Expected zero delta while disabled, got %v", res.Delta)
	}
	// Locks are refreshed regardless of the toggle
	if len(pipeline.GetTracker().Locks) != 1 {
		t.Errorf("Expected 1 lock, got %d", len(pipeline.GetTracker().Locks))
	}
}

func TestPipelineStepEnabled(t *testing.T) {
	pipeline := NewPipelineDefault()
	pipeline.SetEnabled(true)

	if !pipeline.IsEnabled() {
		t.Fatal("Expected pipeline to be enabled")
	}

	detections := []BoundingBox{
		NewBoundingBox(400, 300, 450, 350, 0.9, 0),
	}
	cursor := Point{X: 0, Y: 0}
	res, err := pipeline.Step(detections, cursor, 1.0)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !res.HasTarget {
		t.Fatal("Expected a target")
	}

	// Delta matches a standalone controller fed the same inputs
	reference := NewControllerDefault()
	want := reference.Compute(cursor, res.Target.Center())
	if res.Delta != want {
		t.Errorf("Expected delta %v, got %v", want, res.Delta)
	}
	if res.Delta.Norm() > DefaultControllerParams().MaxSpeed+eps {
		t.Errorf("Delta magnitude %f exceeds max speed", res.Delta.Norm())
	}
}

func TestPipelineEnableResetsController(t *testing.T) {
	pipeline := NewPipelineDefault()
	pipeline.SetEnabled(true)

	detections := []BoundingBox{
		NewBoundingBox(400, 300, 450, 350, 0.9, 0),
	}
	if _, err := pipeline.Step(detections, Point{X: 0, Y: 0}, 1.0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if pipeline.GetController().prevOutput == (Point{}) {
		t.Fatal("Expected controller to accumulate state")
	}

	pipeline.SetEnabled(false)
	pipeline.SetEnabled(true)

	if pipeline.GetController().prevOutput != (Point{}) {
		t.Error("Expected controller state to be reset on re-enable")
	}
	if pipeline.GetController().prevError != (Point{}) {
		t.Error("Expected controller error history to be reset on re-enable")
	}
}

func TestPipelineSelfBoxExcluded(t *testing.T) {
	pipeline := NewPipelineDefault()
	pipeline.SetEnabled(true)

	// Only detection covers the screen center, so nothing is targetable
	detections := []BoundingBox{
		NewBoundingBox(900, 500, 1020, 580, 0.99, 0),
	}
	res, err := pipeline.Step(detections, Point{X: 0, Y: 0}, 1.0)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if res.HasTarget {
		t.Error("Expected no target when the only box covers the self-anchor")
	}
	if res.Delta != (Point{}) {
		t.Errorf("Expected zero delta, got %v", res.Delta)
	}
	if len(pipeline.GetTracker().Locks) != 0 {
		t.Errorf("Excluded box should not spawn a lock, got %d locks", len(pipeline.GetTracker().Locks))
	}
}

func TestPipelineLockedTarget(t *testing.T) {
	pipeline := NewPipelineDefault()

	if _, ok := pipeline.GetLockedTarget(); ok {
		t.Error("Expected no locked target before any tick")
	}

	detections := []BoundingBox{
		NewBoundingBox(400, 300, 450, 350, 0.9, 0),
	}
	res, err := pipeline.Step(detections, Point{X: 0, Y: 0}, 1.0)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	lock, ok := pipeline.GetLockedTarget()
	if !ok {
		t.Fatal("Expected a locked target")
	}
	if lock.DistanceTo(res.Target.Center()) > 10 {
		t.Errorf("Expected lock near target center %v, got %v", res.Target.Center(), lock.GetCenter())
	}
}

func TestPipelineFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller.MaxSpeed = 10.0
	pipeline := NewPipeline(cfg)

	if pipeline.GetController().GetParams().MaxSpeed != 10.0 {
		t.Errorf("Expected configured max speed 10, got %f", pipeline.GetController().GetParams().MaxSpeed)
	}
	if pipeline.GetSelector().GetAnchor() != (Point{X: 960, Y: 540}) {
		t.Errorf("Expected anchor at screen center, got %v", pipeline.GetSelector().GetAnchor())
	}
}
