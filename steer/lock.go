package steer

import "github.com/google/uuid"

// TargetLock is the interface for targets tracked across ticks.
// CenterLock and BoxLock are the concrete implementations.
// Unlike per-tick detections (plain BoundingBox values), a lock has identity
// and carries filter state between ticks.
type TargetLock interface {
	// Identity
	GetID() uuid.UUID
	SetID(newID uuid.UUID)

	// Geometry
	GetCenter() Point
	GetBBox() BoundingBox
	GetPredictedBBox() BoundingBox
	GetDiagonal() float64

	// Track history
	GetTrack() []Point
	GetMaxTrackLen() int
	SetMaxTrackLen(newMaxTrackLen int)

	// Lifecycle
	Activate()
	Deactivate()
	IsActive() bool

	// Match tracking
	GetNoMatchTimes() int
	IncNoMatch()
	ResetNoMatch()

	// Kalman operations
	PredictNextPosition()
	Update(detection BoundingBox) error

	// Distance calculations
	DistanceTo(p Point) float64
	DistanceToPredicted(p Point) float64
}

// LockFactory builds a fresh lock from an unmatched detection
type LockFactory func(detection BoundingBox) TargetLock
