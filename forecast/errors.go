package forecast

import "fmt"

// InsufficientDataError is returned when the history is shorter than the
// requested lookback window.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d points, need %d", e.Have, e.Need)
}

// FittingError is a degenerate regression input for a given model.
type FittingError struct {
	Model  Kind
	Reason string
}

func (e *FittingError) Error() string {
	return fmt.Sprintf("%s fit failed: %s", e.Model, e.Reason)
}

func fitErr(k Kind, format string, args ...interface{}) error {
	return &FittingError{Model: k, Reason: fmt.Sprintf(format, args...)}
}
