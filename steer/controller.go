package steer

// ControllerParams is the set of gains for Controller.
// Values are not validated: callers are free to set gains outside of their
// usual ranges and get whatever the arithmetic produces.
type ControllerParams struct {
	// Proportional gain
	Kp float64 `yaml:"kp"`
	// Derivative gain
	Kd float64 `yaml:"kd"`
	// Smoothing factor in [0;1]. Closer to 1 favors responsiveness, closer to 0 favors stability
	Alpha float64 `yaml:"alpha"`
	// Radius around the target (in coordinate units) within which no movement is produced
	DeadZone float64 `yaml:"dead_zone"`
	// Maximum magnitude of the output vector (units per tick)
	MaxSpeed float64 `yaml:"max_speed"`
}

// DefaultControllerParams returns gains suitable for a 1920x1080 space at ~30-60 ticks per second
func DefaultControllerParams() ControllerParams {
	return ControllerParams{
		Kp:       0.15,
		Kd:       0.05,
		Alpha:    0.85,
		DeadZone: 5.0,
		MaxSpeed: 30.0,
	}
}

// ParamOption modifies a single field of ControllerParams
type ParamOption func(*ControllerParams)

func WithKp(kp float64) ParamOption {
	return func(params *ControllerParams) {
		params.Kp = kp
	}
}

func WithKd(kd float64) ParamOption {
	return func(params *ControllerParams) {
		params.Kd = kd
	}
}

func WithAlpha(alpha float64) ParamOption {
	return func(params *ControllerParams) {
		params.Alpha = alpha
	}
}

func WithDeadZone(deadZone float64) ParamOption {
	return func(params *ControllerParams) {
		params.DeadZone = deadZone
	}
}

func WithMaxSpeed(maxSpeed float64) ParamOption {
	return func(params *ControllerParams) {
		params.MaxSpeed = maxSpeed
	}
}

// Controller converts tracking error into a bounded movement vector.
// Control law is PD (proportional-derivative) with exponential smoothing of
// the output against the previous tick and a final magnitude clamp:
//
//	error    = target - cursor
//	raw      = Kp*error + Kd*(error - prevError)/dt
//	smoothed = Alpha*raw + (1-Alpha)*prevOutput
//	output   = smoothed scaled down to MaxSpeed when above it
//
// Controller carries state between ticks (previous error, previous output), so
// each independent tracking session needs its own instance. Calls are not safe
// for concurrent use.
type Controller struct {
	params     ControllerParams
	prevError  Point
	prevOutput Point
}

// NewControllerDefault creates Controller with default gains
func NewControllerDefault() *Controller {
	return NewController(DefaultControllerParams())
}

// NewController creates Controller with given gains
func NewController(params ControllerParams) *Controller {
	return &Controller{
		params: params,
	}
}

// Compute calls ComputeWithTime with time step of 1.0 (one tick per frame)
func (ctrl *Controller) Compute(cursor, target Point) Point {
	return ctrl.ComputeWithTime(cursor, target, 1.0)
}

// ComputeWithTime returns the movement delta to add to the cursor position
// this tick. dt must be positive, a zero or negative value is a caller
// contract violation and is not checked here.
//
// Inside the dead zone the output is exactly (0, 0). Previous error is still
// committed so the derivative term sees a fresh value on dead-zone exit, while
// previous output is deliberately left untouched: a zero written there would
// drag the smoothing filter down for no reason.
func (ctrl *Controller) ComputeWithTime(cursor, target Point, dt float64) Point {
	err := target.Sub(cursor)

	distance := err.Norm()
	if distance < ctrl.params.DeadZone {
		ctrl.prevError = err
		return Point{}
	}

	raw := Point{
		X: ctrl.params.Kp*err.X + ctrl.params.Kd*(err.X-ctrl.prevError.X)/dt,
		Y: ctrl.params.Kp*err.Y + ctrl.params.Kd*(err.Y-ctrl.prevError.Y)/dt,
	}

	smoothed := Point{
		X: ctrl.params.Alpha*raw.X + (1-ctrl.params.Alpha)*ctrl.prevOutput.X,
		Y: ctrl.params.Alpha*raw.Y + (1-ctrl.params.Alpha)*ctrl.prevOutput.Y,
	}

	// Clamp magnitude preserving direction. The clamped value is what
	// persists as the next tick's smoothing baseline.
	speed := smoothed.Norm()
	if speed > ctrl.params.MaxSpeed {
		scale := ctrl.params.MaxSpeed / speed
		smoothed.X *= scale
		smoothed.Y *= scale
	}

	ctrl.prevError = err
	ctrl.prevOutput = smoothed
	return smoothed
}

// Reset clears previous error and previous output. Call it whenever the
// owning loop transitions from disabled to enabled so that stale history
// from a prior engagement never leaks into a new one.
func (ctrl *Controller) Reset() {
	ctrl.prevError = Point{}
	ctrl.prevOutput = Point{}
}

// GetParams returns current gains
func (ctrl *Controller) GetParams() ControllerParams {
	return ctrl.params
}

// UpdateParams applies a partial update of gains. Options are applied to a
// copy of the current params which is then swapped in whole, so a tick never
// observes a half-updated set.
func (ctrl *Controller) UpdateParams(opts ...ParamOption) {
	updated := ctrl.params
	for _, opt := range opts {
		opt(&updated)
	}
	ctrl.params = updated
}

// Distance is a shorthand for Euclidean distance between two points
func Distance(p1, p2 Point) float64 {
	return euclideanDistance(p1, p2)
}
