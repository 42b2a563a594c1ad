package simulation

import "fmt"

// ConfigurationError is a config that cannot be simulated: a non-positive
// horizon, a missing rate function, or a rate undefined on some day.
type ConfigurationError struct {
	Field  string
	Day    int // 0 when the error is not tied to a day
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Day > 0 {
		return fmt.Sprintf("invalid %s on day %d: %s", e.Field, e.Day, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidProbabilityError is only returned under StrictProbability.
type InvalidProbabilityError struct {
	Day int
	P   float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("trial probability %g on day %d is outside [0,1]", e.P, e.Day)
}
