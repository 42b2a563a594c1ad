package simulation

import (
	"fmt"
	"math"

	"github.com/FactomWyomingEntity/prosper-roi/rates"
)

// Config is everything a single simulation run needs. Every RateFunc must be
// pure, batch runs call them from several goroutines.
type Config struct {
	NetworkHashRate    rates.RateFunc
	PoolHashRate       rates.RateFunc
	EtherPrice         rates.RateFunc
	Reward             rates.RateFunc
	BlocksAddedToChain rates.RateFunc

	// Days is the nominal horizon. Days 1 through Days-1 are simulated, the
	// final nominal day never is.
	Days int
}

// ProbabilityPolicy decides what happens when pool/network leaves [0,1].
type ProbabilityPolicy int

const (
	// ClampProbability clamps the daily trial probability into [0,1]
	ClampProbability ProbabilityPolicy = iota
	// StrictProbability fails the run with an InvalidProbabilityError
	StrictProbability
)

func (p ProbabilityPolicy) String() string {
	switch p {
	case ClampProbability:
		return "clamp"
	case StrictProbability:
		return "strict"
	}
	return "unknown"
}

// SimulatedDays is the number of days a run will produce records for.
func (c Config) SimulatedDays() int {
	if c.Days <= 1 {
		return 0
	}
	return c.Days - 1
}

// Validate checks the static parts of the config. Rate values are checked
// day by day while simulating.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return &ConfigurationError{Field: "days", Reason: "must be positive"}
	}

	funcs := []struct {
		name string
		f    rates.RateFunc
	}{
		{"network hash rate", c.NetworkHashRate},
		{"pool hash rate", c.PoolHashRate},
		{"ether price", c.EtherPrice},
		{"reward", c.Reward},
		{"blocks added to chain", c.BlocksAddedToChain},
	}
	for _, fn := range funcs {
		if fn.f == nil {
			return &ConfigurationError{Field: fn.name, Reason: "rate function is not set"}
		}
	}
	return nil
}

// rate evaluates f and rejects values that are undefined for the day.
func rate(field string, f rates.RateFunc, day int) (float64, error) {
	v := f(day)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ConfigurationError{Field: field, Day: day, Reason: "value is not finite"}
	}
	return v, nil
}

// maxTrials caps the daily block count so it always fits an int.
const maxTrials = math.MaxInt32

// trials is the number of independent block attempts on a day. Fractional
// block counts round up.
func (c Config) trials(day int) (int, error) {
	n, err := rate("blocks added to chain", c.BlocksAddedToChain, day)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ConfigurationError{Field: "blocks added to chain", Day: day, Reason: "negative block count"}
	}
	if n > maxTrials {
		return 0, &ConfigurationError{Field: "blocks added to chain", Day: day, Reason: fmt.Sprintf("block count %g too large", n)}
	}
	return int(math.Ceil(n)), nil
}

// probability is pool/network for the day under the given policy.
func (c Config) probability(day int, policy ProbabilityPolicy) (float64, error) {
	network, err := rate("network hash rate", c.NetworkHashRate, day)
	if err != nil {
		return 0, err
	}
	if network <= 0 {
		return 0, &ConfigurationError{Field: "network hash rate", Day: day, Reason: "must be positive"}
	}
	pool, err := rate("pool hash rate", c.PoolHashRate, day)
	if err != nil {
		return 0, err
	}

	p := pool / network
	if p >= 0 && p <= 1 {
		return p, nil
	}
	if policy == StrictProbability {
		return 0, &InvalidProbabilityError{Day: day, P: p}
	}
	return math.Max(0, math.Min(1, p)), nil
}
