package steer

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BoxLock is a tracked target using 8-D Kalman filter for full bounding box dynamics.
// State vector: [cx, cy, w, h, vx, vy, vw, vh] - center position, size, and velocities.
// Use it over CenterLock when the target's apparent size changes between ticks
// (target approaching or receding). It implements TargetLock interface.
type BoxLock struct {
	id            uuid.UUID
	currentBBox   BoundingBox
	predictedBBox BoundingBox
	track         []Point
	maxTrackLen   int
	active        bool
	noMatchTimes  int
	diagonal      float64
	tracker       *kalman_filter.KalmanBBox
}

// NewBoxLockWithTime creates a new BoxLock with specified time step
func NewBoxLockWithTime(detection BoundingBox, dt float64) *BoxLock {
	center := detection.Center()

	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(center.X, center.Y, detection.Width(), detection.Height()),
	)

	lock := BoxLock{
		id:            uuid.New(),
		currentBBox:   detection,
		predictedBBox: detection,
		track:         make([]Point, 0, 150),
		maxTrackLen:   150,
		active:        false,
		noMatchTimes:  0,
		diagonal:      detection.Diagonal(),
		tracker:       kf,
	}
	lock.track = append(lock.track, center)
	return &lock
}

// NewBoxLock creates a new BoxLock with default time step of 1.0
func NewBoxLock(detection BoundingBox) *BoxLock {
	return NewBoxLockWithTime(detection, 1.0)
}

// Activate activates lock
func (lock *BoxLock) Activate() {
	lock.active = true
}

// Deactivate deactivates lock
func (lock *BoxLock) Deactivate() {
	lock.active = false
}

// IsActive reports whether lock was matched on the latest tick
func (lock *BoxLock) IsActive() bool {
	return lock.active
}

// GetID returns lock's identifier
func (lock *BoxLock) GetID() uuid.UUID {
	return lock.id
}

// SetID sets lock's identifier
func (lock *BoxLock) SetID(newID uuid.UUID) {
	lock.id = newID
}

// GetCenter returns lock's current center
func (lock *BoxLock) GetCenter() Point {
	return lock.currentBBox.Center()
}

// GetBBox returns lock's current bounding box
func (lock *BoxLock) GetBBox() BoundingBox {
	return lock.currentBBox
}

// GetPredictedBBox returns predicted bounding box from Kalman filter
func (lock *BoxLock) GetPredictedBBox() BoundingBox {
	return lock.predictedBBox
}

// GetDiagonal returns lock's estimated diagonal
func (lock *BoxLock) GetDiagonal() float64 {
	return lock.diagonal
}

// GetTrack returns lock's current track. Be careful: this is not copy of track, but reference to it
func (lock *BoxLock) GetTrack() []Point {
	return lock.track
}

// GetMaxTrackLen returns lock's max track length
func (lock *BoxLock) GetMaxTrackLen() int {
	return lock.maxTrackLen
}

// SetMaxTrackLen sets lock's max track length
func (lock *BoxLock) SetMaxTrackLen(newMaxTrackLen int) {
	lock.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns lock's no match times
func (lock *BoxLock) GetNoMatchTimes() int {
	return lock.noMatchTimes
}

// IncNoMatch increases lock's no match times
func (lock *BoxLock) IncNoMatch() {
	lock.noMatchTimes++
}

// ResetNoMatch resets lock's no match times
func (lock *BoxLock) ResetNoMatch() {
	lock.noMatchTimes = 0
}

// DistanceTo returns distance from lock's current center to given point
func (lock *BoxLock) DistanceTo(p Point) float64 {
	return euclideanDistance(lock.GetCenter(), p)
}

// DistanceToPredicted returns distance from lock's predicted center to given point
func (lock *BoxLock) DistanceToPredicted(p Point) float64 {
	return euclideanDistance(lock.predictedBBox.Center(), p)
}

// PredictNextPosition executes Kalman filter prediction step
func (lock *BoxLock) PredictNextPosition() {
	lock.tracker.Predict()
	cx, cy, w, h := lock.tracker.GetState()
	lock.predictedBBox = BoundingBox{
		X1:      cx - w/2.0,
		Y1:      cy - h/2.0,
		X2:      cx + w/2.0,
		Y2:      cy + h/2.0,
		Score:   lock.currentBBox.Score,
		ClassID: lock.currentBBox.ClassID,
	}
}

// Update feeds a fresh detection into lock and executes Kalman filter update step
func (lock *BoxLock) Update(detection BoundingBox) error {
	center := detection.Center()

	// Update Kalman filter with full bbox measurement
	err := lock.tracker.Update(center.X, center.Y, detection.Width(), detection.Height())
	if err != nil {
		return errors.Wrap(err, "Can't update target lock")
	}

	// Get smoothed state from Kalman filter
	cx, cy, w, h := lock.tracker.GetState()
	lock.currentBBox = BoundingBox{
		X1:      cx - w/2.0,
		Y1:      cy - h/2.0,
		X2:      cx + w/2.0,
		Y2:      cy + h/2.0,
		Score:   detection.Score,
		ClassID: detection.ClassID,
	}

	// Update remaining properties
	lock.diagonal = lock.currentBBox.Diagonal()
	lock.active = true
	lock.noMatchTimes = 0

	// Update track with smoothed center position
	lock.track = append(lock.track, Point{X: cx, Y: cy})
	if len(lock.track) > lock.maxTrackLen {
		lock.track = lock.track[1:]
	}
	return nil
}

// GetVelocity returns current velocity estimates (vx, vy, vw, vh) from Kalman filter
func (lock *BoxLock) GetVelocity() (float64, float64, float64, float64) {
	return lock.tracker.GetVelocity()
}
