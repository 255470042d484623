package steer

import (
	"testing"
)

func TestSelectorEmptyInput(t *testing.T) {
	selector := NewSelectorDefault()

	_, ok := selector.Select(nil, Point{X: 0, Y: 0})
	if ok {
		t.Error("Expected no target for empty input")
	}
	if len(selector.GetCandidates()) != 0 {
		t.Errorf("Expected empty candidate list, got %d candidates", len(selector.GetCandidates()))
	}
	if _, ok := selector.GetCurrentTarget(); ok {
		t.Error("Expected no current target after empty input")
	}
}

func TestSelectorSelfExclusion(t *testing.T) {
	selector := NewSelectorDefault()

	// BoxB covers the self-anchor (960, 540) and must never be selected
	boxA := NewBoundingBox(975, 515, 1025, 565, 0.9, 0)  // center (1000, 540)
	boxB := NewBoundingBox(940, 520, 980, 560, 0.95, 0)  // center (960, 540)

	target, ok := selector.Select([]BoundingBox{boxA, boxB}, Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("Expected a target")
	}
	if target != boxA {
		t.Errorf("Expected boxA to be selected, got %v", target)
	}

	candidates := selector.GetCandidates()
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate after exclusion, got %d", len(candidates))
	}
	if candidates[0] != boxA {
		t.Errorf("Expected candidate list to contain only boxA, got %v", candidates[0])
	}
}

func TestSelectorAnchorOnBoundary(t *testing.T) {
	selector := NewSelectorDefault()

	// Anchor exactly on the right edge of the box: still excluded
	onEdge := NewBoundingBox(900, 500, 960, 580, 0.9, 0)

	_, ok := selector.Select([]BoundingBox{onEdge}, Point{X: 0, Y: 0})
	if ok {
		t.Error("Box with anchor on its edge should be excluded")
	}
	if len(selector.GetCandidates()) != 0 {
		t.Errorf("Expected empty candidate list, got %d candidates", len(selector.GetCandidates()))
	}
}

func TestSelectorAllExcluded(t *testing.T) {
	selector := NewSelector(Point{X: 50, Y: 50})

	detections := []BoundingBox{
		NewBoundingBox(0, 0, 100, 100, 0.9, 0),
		NewBoundingBox(40, 40, 60, 60, 0.8, 0),
	}
	_, ok := selector.Select(detections, Point{X: 0, Y: 0})
	if ok {
		t.Error("Expected no target when every box is excluded")
	}
	if len(selector.GetCandidates()) != 0 {
		t.Errorf("Expected empty candidate list, got %d candidates", len(selector.GetCandidates()))
	}
	if _, ok := selector.GetCurrentTarget(); ok {
		t.Error("Expected no current target")
	}
}

func TestSelectorNearest(t *testing.T) {
	selector := NewSelectorDefault()

	far := NewBoundingBox(1500, 800, 1550, 850, 0.9, 0)   // center (1525, 825)
	near := NewBoundingBox(100, 100, 150, 150, 0.6, 0)    // center (125, 125)
	middle := NewBoundingBox(500, 300, 550, 350, 0.99, 0) // center (525, 325)

	target, ok := selector.Select([]BoundingBox{far, near, middle}, Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("Expected a target")
	}
	// Nearest by distance, confidence plays no role in selection
	if target != near {
		t.Errorf("Expected nearest box to be selected, got %v", target)
	}

	current, ok := selector.GetCurrentTarget()
	if !ok || current != near {
		t.Errorf("Expected current target snapshot %v, got %v", near, current)
	}
}

func TestSelectorTieBreak(t *testing.T) {
	selector := NewSelectorDefault()

	// Both centers are exactly 100 px away from the cursor
	first := NewBoundingBox(90, -10, 110, 10, 0.5, 0) // center (100, 0)
	second := NewBoundingBox(-10, 90, 10, 110, 0.5, 0) // center (0, 100)

	target, ok := selector.Select([]BoundingBox{first, second}, Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("Expected a target")
	}
	// First box in input order wins exact ties
	if target != first {
		t.Errorf("Expected first box in input order to win the tie, got %v", target)
	}

	// Swapped input order flips the winner
	target, ok = selector.Select([]BoundingBox{second, first}, Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("Expected a target")
	}
	if target != second {
		t.Errorf("Expected first box in swapped order to win the tie, got %v", target)
	}
}

func TestSelectorSnapshotCleared(t *testing.T) {
	selector := NewSelectorDefault()

	box := NewBoundingBox(100, 100, 150, 150, 0.9, 0)
	_, ok := selector.Select([]BoundingBox{box}, Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("Expected a target")
	}
	if len(selector.GetCandidates()) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(selector.GetCandidates()))
	}

	// Empty tick clears the snapshot
	_, ok = selector.Select(nil, Point{X: 0, Y: 0})
	if ok {
		t.Error("Expected no target")
	}
	if len(selector.GetCandidates()) != 0 {
		t.Errorf("Expected cleared candidate list, got %d candidates", len(selector.GetCandidates()))
	}
	if _, ok := selector.GetCurrentTarget(); ok {
		t.Error("Expected cleared current target")
	}
}
