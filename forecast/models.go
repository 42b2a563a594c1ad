package forecast

import (
	"fmt"
	"math"
	"strings"
)

// Kind names a fitted functional form
type Kind string

const (
	KindLinear      Kind = "linear"
	KindQuadratic   Kind = "quadratic"
	KindExponential Kind = "exponential"
)

// Model is a fitted trend. Predict may be called for any day, including days
// outside the fitted window; extrapolation accuracy is the caller's concern.
type Model interface {
	Predict(day float64) float64
	Kind() Kind
	// RSquared is the coefficient of determination over the fitted window.
	RSquared() float64
	String() string
}

// Linear is y = Slope*x + Intercept
type Linear struct {
	Slope     float64
	Intercept float64
	R2        float64
}

func (m *Linear) Predict(day float64) float64 { return m.Slope*day + m.Intercept }
func (m *Linear) Kind() Kind                  { return KindLinear }
func (m *Linear) RSquared() float64           { return m.R2 }

func (m *Linear) String() string {
	return fmt.Sprintf("y = %gx + %g", m.Slope, m.Intercept)
}

// Quadratic is y = C[0] + C[1]*x + C[2]*x^2
type Quadratic struct {
	C  [3]float64
	R2 float64
}

func (m *Quadratic) Predict(day float64) float64 {
	return m.C[0] + m.C[1]*day + m.C[2]*day*day
}
func (m *Quadratic) Kind() Kind        { return KindQuadratic }
func (m *Quadratic) RSquared() float64 { return m.R2 }

func (m *Quadratic) String() string {
	return fmt.Sprintf("y = %gx^2 + %gx + %g", m.C[2], m.C[1], m.C[0])
}

// Exponential is y = A*e^(B*x)
type Exponential struct {
	A  float64
	B  float64
	R2 float64
}

func (m *Exponential) Predict(day float64) float64 { return m.A * math.Exp(m.B*day) }
func (m *Exponential) Kind() Kind                  { return KindExponential }
func (m *Exponential) RSquared() float64           { return m.R2 }

func (m *Exponential) String() string {
	return fmt.Sprintf("y = %ge^(%gx)", m.A, m.B)
}

// Models holds one fit of each kind over the same window. A form that could
// not be fitted is nil and its FittingError is in Errors.
type Models struct {
	Linear      Model
	Quadratic   Model
	Exponential Model

	Errors map[Kind]error
}

// All returns the fitted models in a stable order, skipping failed forms.
func (ms *Models) All() []Model {
	var all []Model
	for _, m := range []Model{ms.Linear, ms.Quadratic, ms.Exponential} {
		if m != nil {
			all = append(all, m)
		}
	}
	return all
}

// ByName selects a model by its kind, case insensitive. A form that failed to
// fit returns its fitting error.
func (ms *Models) ByName(name string) (Model, error) {
	for _, k := range []Kind{KindLinear, KindQuadratic, KindExponential} {
		if !strings.EqualFold(string(k), name) {
			continue
		}
		if err, ok := ms.Errors[k]; ok {
			return nil, err
		}
		for _, m := range ms.All() {
			if m.Kind() == k {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown model %q, choose from linear, quadratic, or exponential", name)
}

// Best returns the fitted model with the highest r^2. Ties go to the simpler
// form.
func (ms *Models) Best() Model {
	var best Model
	for _, m := range ms.All() {
		if best == nil || m.RSquared() > best.RSquared() {
			best = m
		}
	}
	return best
}
