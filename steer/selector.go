package steer

import (
	"gonum.org/v1/gonum/floats"
)

// Selector picks which detected object should be steered towards.
// A box containing the self-anchor point (the tracked surface's own on-screen
// representation sits at its center) is never a valid target, every remaining
// box competes by center-to-cursor distance.
//
// Selector keeps a snapshot of the last filtered candidate set and the last
// selected target for introspection. The snapshot never feeds back into
// selection logic.
type Selector struct {
	anchor        Point
	candidates    []BoundingBox
	currentTarget BoundingBox
	hasTarget     bool
}

// NewSelectorDefault creates Selector with self-anchor at the center of a 1920x1080 space
func NewSelectorDefault() *Selector {
	return NewSelector(Point{X: 960, Y: 540})
}

// NewSelector creates Selector with given self-anchor point.
// The anchor is fixed for the lifetime of the instance and is not recomputed per call.
func NewSelector(anchor Point) *Selector {
	return &Selector{
		anchor:     anchor,
		candidates: make([]BoundingBox, 0),
	}
}

// Select returns the surviving box closest to the cursor by center distance.
// Second return value is false when there is no target: empty input or every
// box excluded by the self-anchor rule. On exact distance ties the first box
// in input order wins (floats.MinIdx keeps the earliest minimum).
func (selector *Selector) Select(detections []BoundingBox, cursor Point) (BoundingBox, bool) {
	if len(detections) == 0 {
		selector.clear()
		return BoundingBox{}, false
	}

	// Exclude boxes covering the self-anchor point
	filtered := make([]BoundingBox, 0, len(detections))
	for _, detection := range detections {
		if detection.Contains(selector.anchor) {
			continue
		}
		filtered = append(filtered, detection)
	}
	selector.candidates = filtered

	if len(filtered) == 0 {
		selector.currentTarget = BoundingBox{}
		selector.hasTarget = false
		return BoundingBox{}, false
	}

	distances := make([]float64, len(filtered))
	for i := range filtered {
		distances[i] = euclideanDistance(filtered[i].Center(), cursor)
	}
	nearestIdx := floats.MinIdx(distances)

	selector.currentTarget = filtered[nearestIdx]
	selector.hasTarget = true
	return selector.currentTarget, true
}

// GetAnchor returns selector's self-anchor point
func (selector *Selector) GetAnchor() Point {
	return selector.anchor
}

// GetCandidates returns last post-exclusion candidate set. Be careful: this is not copy of candidates, but reference to them
func (selector *Selector) GetCandidates() []BoundingBox {
	return selector.candidates
}

// GetCurrentTarget returns last selected target. Second return value is false when nothing is selected
func (selector *Selector) GetCurrentTarget() (BoundingBox, bool) {
	return selector.currentTarget, selector.hasTarget
}

func (selector *Selector) clear() {
	selector.candidates = selector.candidates[:0]
	selector.currentTarget = BoundingBox{}
	selector.hasTarget = false
}
