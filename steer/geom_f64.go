package steer

import (
	"image"
	"math"
)

// BoundingBox is a detected object in corner form: (X1, Y1) is the top-left
// corner, (X2, Y2) is the bottom-right one. Score is detection confidence in
// [0;1] and ClassID is the detector's class index. Coordinates are expected to
// be in the same space as the cursor (see Scaler).
type BoundingBox struct {
	X1      float64
	Y1      float64
	X2      float64
	Y2      float64
	Score   float64
	ClassID int
}

func NewBoundingBox(x1, y1, x2, y2, score float64, classID int) BoundingBox {
	return BoundingBox{
		X1:      x1,
		Y1:      y1,
		X2:      x2,
		Y2:      y2,
		Score:   score,
		ClassID: classID,
	}
}

func NewBoundingBoxFrom(rect image.Rectangle, score float64, classID int) BoundingBox {
	return BoundingBox{
		X1:      float64(rect.Min.X),
		Y1:      float64(rect.Min.Y),
		X2:      float64(rect.Max.X),
		Y2:      float64(rect.Max.Y),
		Score:   score,
		ClassID: classID,
	}
}

// CenterX returns center of bounding box (x-axis)
func (bbox BoundingBox) CenterX() float64 {
	return (bbox.X1 + bbox.X2) / 2.0
}

// CenterY returns center of bounding box (y-axis)
func (bbox BoundingBox) CenterY() float64 {
	return (bbox.Y1 + bbox.Y2) / 2.0
}

// Center returns center of bounding box
func (bbox BoundingBox) Center() Point {
	return Point{
		X: (bbox.X1 + bbox.X2) / 2.0,
		Y: (bbox.Y1 + bbox.Y2) / 2.0,
	}
}

// Width returns width of bounding box
func (bbox BoundingBox) Width() float64 {
	return bbox.X2 - bbox.X1
}

// Height returns height of bounding box
func (bbox BoundingBox) Height() float64 {
	return bbox.Y2 - bbox.Y1
}

// Diagonal returns length of bounding box diagonal
func (bbox BoundingBox) Diagonal() float64 {
	return math.Sqrt(math.Pow(bbox.X2-bbox.X1, 2) + math.Pow(bbox.Y2-bbox.Y1, 2))
}

// Contains reports whether the point lies inside of bounding box.
// Check is inclusive on all four edges: point exactly on a border counts as contained.
func (bbox BoundingBox) Contains(p Point) bool {
	return bbox.X1 <= p.X && p.X <= bbox.X2 &&
		bbox.Y1 <= p.Y && p.Y <= bbox.Y2
}

// Scaled returns copy of bounding box with each corner multiplied by given per-axis factors
func (bbox BoundingBox) Scaled(scaleX, scaleY float64) BoundingBox {
	return BoundingBox{
		X1:      bbox.X1 * scaleX,
		Y1:      bbox.Y1 * scaleY,
		X2:      bbox.X2 * scaleX,
		Y2:      bbox.Y2 * scaleY,
		Score:   bbox.Score,
		ClassID: bbox.ClassID,
	}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// Sub returns per-axis difference p - other
func (p Point) Sub(other Point) Point {
	return Point{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Norm returns Euclidean magnitude of the point treated as a vector
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
