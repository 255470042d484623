package steer

// IoU calculates Intersection over Union between two bounding boxes.
// Boxes are in corner form, so intersection corners are direct min/max of inputs.
func IoU(b1, b2 BoundingBox) float64 {
	xA := maxFloat64(b1.X1, b2.X1)
	yA := maxFloat64(b1.Y1, b2.Y1)
	xB := minFloat64(b1.X2, b2.X2)
	yB := minFloat64(b1.Y2, b2.Y2)

	interArea := maxFloat64(0, xB-xA) * maxFloat64(0, yB-yA)
	if interArea == 0 {
		return 0.0
	}

	b1Area := (b1.X2 - b1.X1) * (b1.Y2 - b1.Y1)
	b2Area := (b2.X2 - b2.X1) * (b2.Y2 - b2.Y1)

	iouVal := interArea / (b1Area + b2Area - interArea)
	return iouVal
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
