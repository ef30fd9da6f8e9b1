package plot

import "errors"

var errThreshold = errors.New("plot: min downsample threshold is 3")

// Downsample reduces points to threshold points with Largest-Triangle-Three-Buckets,
// keeping the first and last point. A zero threshold, or one not smaller than
// len(points), returns a copy of the input.
// See https://skemman.is/bitstream/1946/15343/3/SS_MSthesis.pdf
func Downsample(points []Point, threshold int) ([]Point, error) {
	if threshold == 0 || threshold >= len(points) {
		out := make([]Point, len(points))
		copy(out, points)
		return out, nil
	}
	if threshold < 3 {
		return nil, errThreshold
	}

	// bucket size, leaving room for the first and last points
	size := float64(len(points)-2) / float64(threshold-2)

	samples := make([]Point, 0, threshold)
	samples = append(samples, points[0])

	for i := 0; i < threshold-2; i++ {
		lo := int(float64(i)*size) + 1
		hi := int(float64(i+1)*size) + 1

		nlo, nhi := hi, int(float64(i+2)*size)+1
		if nhi > len(points)-1 {
			nhi = len(points) - 1
		}
		if nlo >= nhi {
			nlo, nhi = len(points)-1, len(points)
		}

		samples = append(samples, largestTriangle(samples[len(samples)-1], points[lo:hi], points[nlo:nhi]))
	}

	return append(samples, points[len(points)-1]), nil
}

// largestTriangle picks the point of current forming the largest triangle with
// a and the centroid of next.
func largestTriangle(a Point, current, next []Point) Point {
	var c Point
	for _, p := range next {
		c.X, c.Y = c.X+p.X, c.Y+p.Y
	}
	n := float64(len(next))
	c.X, c.Y = c.X/n, c.Y/n

	var largest float64
	var index int
	for i, p := range current {
		area := (a.X-c.X)*(p.Y-a.Y) - (a.X-p.X)*(c.Y-a.Y)
		// relative area only, squaring avoids math.Abs
		if area *= area; area > largest {
			largest, index = area, i
		}
	}

	return current[index]
}
