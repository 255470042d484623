package steer

// Size is a width/height pair of some coordinate space (model input, screen)
type Size struct {
	Width  int
	Height int
}

func NewSize(width, height int) Size {
	return Size{
		Width:  width,
		Height: height,
	}
}

// Center returns geometric center of the space
func (s Size) Center() Point {
	return Point{
		X: float64(s.Width) / 2.0,
		Y: float64(s.Height) / 2.0,
	}
}

// Scaler is a linear per-axis rescale between two coordinate spaces.
// Detections arrive in model space and must be mapped into screen space
// before they are compared against the cursor position.
type Scaler struct {
	ScaleX float64
	ScaleY float64
}

// NewScaler creates scaler mapping coordinates from one space to another
func NewScaler(from, to Size) Scaler {
	return Scaler{
		ScaleX: float64(to.Width) / float64(from.Width),
		ScaleY: float64(to.Height) / float64(from.Height),
	}
}

// Apply maps a point into the destination space
func (s Scaler) Apply(p Point) Point {
	return Point{
		X: p.X * s.ScaleX,
		Y: p.Y * s.ScaleY,
	}
}

// ApplyBox maps a bounding box into the destination space
func (s Scaler) ApplyBox(bbox BoundingBox) BoundingBox {
	return bbox.Scaled(s.ScaleX, s.ScaleY)
}

// ApplyBoxes maps every bounding box into the destination space
func (s Scaler) ApplyBoxes(bboxes []BoundingBox) []BoundingBox {
	scaled := make([]BoundingBox, len(bboxes))
	for i := range bboxes {
		scaled[i] = bboxes[i].Scaled(s.ScaleX, s.ScaleY)
	}
	return scaled
}

// Inverse returns scaler mapping coordinates back to the source space
func (s Scaler) Inverse() Scaler {
	return Scaler{
		ScaleX: 1.0 / s.ScaleX,
		ScaleY: 1.0 / s.ScaleY,
	}
}
