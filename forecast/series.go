package forecast

// Point is a single historical observation. Day is an offset relative to the
// most recent observation, so history is usually negative up to 0.
type Point struct {
	Day   int
	Value float64
}

// TimeSeries is ordered oldest to newest with no duplicate days.
type TimeSeries []Point

// Window returns the most recent n points re-indexed so the newest point sits
// on day 0 and the oldest on day -(n-1). A non-positive n takes the whole
// series.
func (s TimeSeries) Window(n int) (TimeSeries, error) {
	if n <= 0 {
		n = len(s)
	}
	if len(s) < n {
		return nil, &InsufficientDataError{Have: len(s), Need: n}
	}

	recent := s[len(s)-n:]
	w := make(TimeSeries, n)
	for i, p := range recent {
		w[i] = Point{Day: i - (n - 1), Value: p.Value}
	}
	return w, nil
}

// XY splits the series into parallel day and value slices.
func (s TimeSeries) XY() (xs, ys []float64) {
	xs = make([]float64, len(s))
	ys = make([]float64, len(s))
	for i, p := range s {
		xs[i] = float64(p.Day)
		ys[i] = p.Value
	}
	return xs, ys
}

// Last returns the newest observation. ok is false for an empty series.
func (s TimeSeries) Last() (p Point, ok bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}
