package forecast

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var fitLog = log.WithField("mod", "forecast")

// Fit fits the most recent lookback points of the series to all three trend
// forms. The window is re-indexed so its newest point is day 0. Each form is
// fitted on its own: a form that cannot be fitted is left nil and its error
// kept in Models.Errors. Fit only fails when no form can be fitted.
func Fit(series TimeSeries, lookback int) (*Models, error) {
	w, err := series.Window(lookback)
	if err != nil {
		return nil, err
	}
	xs, ys := w.XY()

	ms := &Models{Errors: make(map[Kind]error)}
	if m, err := FitLinear(xs, ys); err != nil {
		ms.Errors[KindLinear] = err
	} else {
		ms.Linear = m
	}
	if m, err := FitQuadratic(xs, ys); err != nil {
		ms.Errors[KindQuadratic] = err
	} else {
		ms.Quadratic = m
	}
	if m, err := FitExponential(xs, ys); err != nil {
		ms.Errors[KindExponential] = err
	} else {
		ms.Exponential = m
	}

	fitted := ms.All()
	if len(fitted) == 0 {
		return nil, ms.Errors[KindLinear]
	}

	fields := log.Fields{"points": len(w)}
	for _, m := range fitted {
		fields[string(m.Kind())] = m.String()
	}
	for k, err := range ms.Errors {
		fields[string(k)] = err.Error()
	}
	fitLog.WithFields(fields).Debug("fitted trends")
	return ms, nil
}

// FitLinear is ordinary least squares on (x, y).
func FitLinear(xs, ys []float64) (*Linear, error) {
	if err := checkPoints(KindLinear, xs, ys, 2); err != nil {
		return nil, err
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !finite(intercept, slope) {
		return nil, fitErr(KindLinear, "degenerate input, all x values are equal")
	}

	m := &Linear{Slope: slope, Intercept: intercept}
	m.R2 = rSquared(xs, ys, m.Predict)
	return m, nil
}

// FitQuadratic is a least squares polynomial fit of degree 2.
func FitQuadratic(xs, ys []float64) (*Quadratic, error) {
	if err := checkPoints(KindQuadratic, xs, ys, 3); err != nil {
		return nil, err
	}

	n := len(xs)
	a := mat.NewDense(n, 3, nil)
	for i, x := range xs {
		a.Set(i, 0, 1)
		a.Set(i, 1, x)
		a.Set(i, 2, x*x)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, ys)); err != nil {
		return nil, fitErr(KindQuadratic, "singular least squares system: %v", err)
	}

	m := &Quadratic{C: [3]float64{c.AtVec(0), c.AtVec(1), c.AtVec(2)}}
	if !finite(m.C[:]...) {
		return nil, fitErr(KindQuadratic, "non-finite coefficients")
	}
	m.R2 = rSquared(xs, ys, m.Predict)
	return m, nil
}

// FitExponential fits y = a*e^(bx) by least squares on (x, ln y). Every y must
// be positive.
func FitExponential(xs, ys []float64) (*Exponential, error) {
	if err := checkPoints(KindExponential, xs, ys, 2); err != nil {
		return nil, err
	}

	lny := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return nil, fitErr(KindExponential, "value %g at x=%g is not positive", y, xs[i])
		}
		lny[i] = math.Log(y)
	}

	lnA, b := stat.LinearRegression(xs, lny, nil, false)
	m := &Exponential{A: math.Exp(lnA), B: b}
	if !finite(m.A, m.B) {
		return nil, fitErr(KindExponential, "non-finite coefficients")
	}
	m.R2 = rSquared(xs, ys, m.Predict)
	return m, nil
}

func checkPoints(k Kind, xs, ys []float64, min int) error {
	if len(xs) != len(ys) {
		return fitErr(k, "mismatched input, %d x values and %d y values", len(xs), len(ys))
	}
	if len(xs) < min {
		return fitErr(k, "need at least %d points, have %d", min, len(xs))
	}
	for i := range xs {
		if !finite(xs[i], ys[i]) {
			return fitErr(k, "non-finite observation at index %d", i)
		}
	}
	return nil
}

func rSquared(xs, ys []float64, predict func(float64) float64) float64 {
	mean := stat.Mean(ys, nil)
	var ssRes, ssTot float64
	for i, x := range xs {
		r := ys[i] - predict(x)
		d := ys[i] - mean
		ssRes += r * r
		ssTot += d * d
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
