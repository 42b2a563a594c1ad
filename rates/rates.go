// Package rates holds the day indexed functions the simulator consumes:
// network and pool hash rate, asset price, block reward and blocks per day.
// The simulator has no idea which concrete source backs any of them.
package rates

// RateFunc maps a simulated day (>= 1) to a value.
type RateFunc func(day int) float64

// Predictor is anything that can be evaluated at a real valued day, such as a
// fitted trend model.
type Predictor interface {
	Predict(day float64) float64
}

// FromModel binds a fitted model to the RateFunc shape.
func FromModel(p Predictor) RateFunc {
	return func(day int) float64 {
		return p.Predict(float64(day))
	}
}

// Constant returns v for every day.
func Constant(v float64) RateFunc {
	return func(int) float64 { return v }
}

// Ramp linearly interpolates from -> to over horizonDays. On and past the
// horizon it returns 0, which models the asset being sold off, not a held
// final value.
func Ramp(from, to float64, horizonDays int) RateFunc {
	return func(day int) float64 {
		if day < horizonDays {
			return from + (float64(day)/float64(horizonDays))*(to-from)
		}
		return 0
	}
}

// Scale multiplies every value of f by k. Useful to convert a model fitted in
// GH/s into H/s.
func Scale(f RateFunc, k float64) RateFunc {
	return func(day int) float64 {
		return f(day) * k
	}
}
