package steer

import (
	"github.com/pkg/errors"
)

// TickResult is the output of one pipeline tick
type TickResult struct {
	// Movement delta to add to the cursor position, magnitude bounded by MaxSpeed.
	// Zero when there is no target or steering is disabled.
	Delta Point
	// Selected target of this tick
	Target BoundingBox
	// HasTarget is false when nothing survived selection
	HasTarget bool
}

// Pipeline runs the whole per-tick decision-and-control chain:
// selection over detections, lock maintenance across ticks and movement
// computation. The host loop feeds it detections and the cursor position
// once per tick and consumes the movement delta before the next tick.
//
// Pipeline performs no I/O. Capture, inference and cursor actuation are the
// host's business.
type Pipeline struct {
	selector   *Selector
	controller *Controller
	tracker    *LockTracker
	enabled    bool
}

// NewPipelineDefault creates pipeline with default configuration
func NewPipelineDefault() *Pipeline {
	return NewPipeline(DefaultConfig())
}

// NewPipeline creates pipeline from configuration
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		selector:   NewSelector(cfg.Anchor()),
		controller: NewController(cfg.Controller),
		tracker:    NewLockTrackerDefault(),
	}
}

// SetEnabled toggles steering. On the disabled to enabled transition the
// controller state is reset so a new engagement starts without stale
// derivative and smoothing history.
func (p *Pipeline) SetEnabled(enabled bool) {
	if enabled && !p.enabled {
		p.controller.Reset()
	}
	p.enabled = enabled
}

// IsEnabled reports whether steering is on
func (p *Pipeline) IsEnabled() bool {
	return p.enabled
}

// Step executes one tick: selects a target among detections, refreshes target
// locks over the post-exclusion candidates and, when steering is enabled and
// a target exists, computes the movement delta. Detections must already be in
// cursor space (see Scaler).
//
// Selection and lock maintenance run even when steering is disabled, so
// introspection data (candidates, locks) stays fresh for any host overlay.
func (p *Pipeline) Step(detections []BoundingBox, cursor Point, dt float64) (TickResult, error) {
	target, hasTarget := p.selector.Select(detections, cursor)

	err := p.tracker.MatchDetections(p.selector.GetCandidates())
	if err != nil {
		return TickResult{}, errors.Wrap(err, "Can't refresh target locks")
	}

	res := TickResult{
		Target:    target,
		HasTarget: hasTarget,
	}
	if p.enabled && hasTarget {
		res.Delta = p.controller.ComputeWithTime(cursor, target.Center(), dt)
	}
	return res, nil
}

// GetSelector returns underlying target selector
func (p *Pipeline) GetSelector() *Selector {
	return p.selector
}

// GetController returns underlying aim controller
func (p *Pipeline) GetController() *Controller {
	return p.controller
}

// GetTracker returns underlying lock tracker
func (p *Pipeline) GetTracker() *LockTracker {
	return p.tracker
}

// GetLockedTarget returns the lock corresponding to the currently selected
// target, or false when there is none
func (p *Pipeline) GetLockedTarget() (TargetLock, bool) {
	target, ok := p.selector.GetCurrentTarget()
	if !ok {
		return nil, false
	}
	return p.tracker.NearestActiveLock(target.Center())
}
