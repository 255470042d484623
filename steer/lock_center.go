package steer

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CenterLock is a tracked target using 2D Kalman filter for center position.
// The box corners follow the smoothed center rigidly, only detection updates
// change the box size. It implements TargetLock interface.
type CenterLock struct {
	id            uuid.UUID
	currentBBox   BoundingBox
	currentCenter Point
	predictedNext Point
	track         []Point
	maxTrackLen   int
	active        bool
	noMatchTimes  int
	diagonal      float64
	tracker       *kalman_filter.Kalman2D
}

// NewCenterLockWithTime creates a new CenterLock with specified time step
func NewCenterLockWithTime(detection BoundingBox, dt float64) *CenterLock {
	center := detection.Center()

	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(center.X, center.Y))
	lock := CenterLock{
		id:            uuid.New(),
		currentBBox:   detection,
		currentCenter: center,
		predictedNext: Point{X: 0, Y: 0},
		track:         make([]Point, 0, 150),
		maxTrackLen:   150,
		active:        false,
		noMatchTimes:  0,
		diagonal:      detection.Diagonal(),
		tracker:       kf,
	}
	lock.track = append(lock.track, lock.currentCenter)
	return &lock
}

// NewCenterLock creates a new CenterLock with default time step of 1.0
func NewCenterLock(detection BoundingBox) *CenterLock {
	return NewCenterLockWithTime(detection, 1.0)
}

// Activate activates lock
func (lock *CenterLock) Activate() {
	lock.active = true
}

// Deactivate deactivates lock
func (lock *CenterLock) Deactivate() {
	lock.active = false
}

// IsActive reports whether lock was matched on the latest tick
func (lock *CenterLock) IsActive() bool {
	return lock.active
}

// GetID returns lock's identifier
func (lock *CenterLock) GetID() uuid.UUID {
	return lock.id
}

// SetID sets lock's identifier
func (lock *CenterLock) SetID(newID uuid.UUID) {
	lock.id = newID
}

// GetCenter returns lock's current center
func (lock *CenterLock) GetCenter() Point {
	return lock.currentCenter
}

// GetBBox returns lock's current bounding box
func (lock *CenterLock) GetBBox() BoundingBox {
	return lock.currentBBox
}

// GetPredictedBBox returns bounding box centered on the predicted next position
func (lock *CenterLock) GetPredictedBBox() BoundingBox {
	halfW := lock.currentBBox.Width() / 2.0
	halfH := lock.currentBBox.Height() / 2.0
	return BoundingBox{
		X1:      lock.predictedNext.X - halfW,
		Y1:      lock.predictedNext.Y - halfH,
		X2:      lock.predictedNext.X + halfW,
		Y2:      lock.predictedNext.Y + halfH,
		Score:   lock.currentBBox.Score,
		ClassID: lock.currentBBox.ClassID,
	}
}

// GetDiagonal returns lock's estimated diagonal
func (lock *CenterLock) GetDiagonal() float64 {
	return lock.diagonal
}

// GetTrack returns lock's current track. Be careful: this is not copy of track, but reference to it
func (lock *CenterLock) GetTrack() []Point {
	return lock.track
}

// GetMaxTrackLen returns lock's max track length
func (lock *CenterLock) GetMaxTrackLen() int {
	return lock.maxTrackLen
}

// SetMaxTrackLen sets lock's max track length
func (lock *CenterLock) SetMaxTrackLen(newMaxTrackLen int) {
	lock.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns lock's no match times
func (lock *CenterLock) GetNoMatchTimes() int {
	return lock.noMatchTimes
}

// IncNoMatch increases lock's no match times
func (lock *CenterLock) IncNoMatch() {
	lock.noMatchTimes++
}

// ResetNoMatch resets lock's no match times
func (lock *CenterLock) ResetNoMatch() {
	lock.noMatchTimes = 0
}

// DistanceTo returns distance from lock's current center to given point
func (lock *CenterLock) DistanceTo(p Point) float64 {
	return euclideanDistance(lock.currentCenter, p)
}

// DistanceToPredicted returns distance from lock's predicted center to given point
func (lock *CenterLock) DistanceToPredicted(p Point) float64 {
	return euclideanDistance(lock.predictedNext, p)
}

// PredictNextPosition executes Kalman filter's first step but without re-evaluating state vector based on Kalman gain
func (lock *CenterLock) PredictNextPosition() {
	lock.tracker.Predict()
	stateX, stateY := lock.tracker.GetState()
	lock.predictedNext.X = stateX
	lock.predictedNext.Y = stateY
}

// Update feeds a fresh detection into lock and executes Kalman filter's second step (evaluate state vector based on Kalman gain)
func (lock *CenterLock) Update(detection BoundingBox) error {
	// Take measured center and box
	lock.currentCenter = detection.Center()
	lock.currentBBox = detection

	// Smooth center via Kalman filter
	err := lock.tracker.Update(lock.currentCenter.X, lock.currentCenter.Y)
	if err != nil {
		return errors.Wrap(err, "Can't update target lock")
	}
	// Re-evaluate center and shift bounding box after it
	stateX, stateY := lock.tracker.GetState()
	diffX := stateX - lock.currentCenter.X
	diffY := stateY - lock.currentCenter.Y
	lock.currentCenter.X = stateX
	lock.currentCenter.Y = stateY
	lock.currentBBox.X1 += diffX
	lock.currentBBox.X2 += diffX
	lock.currentBBox.Y1 += diffY
	lock.currentBBox.Y2 += diffY
	// Update remaining properties
	lock.diagonal = detection.Diagonal()
	lock.active = true
	lock.noMatchTimes = 0
	// Update track
	lock.track = append(lock.track, lock.currentCenter)
	if len(lock.track) > lock.maxTrackLen {
		lock.track = lock.track[1:]
	}
	return nil
}
