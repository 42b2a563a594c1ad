package simulation

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

var simLog = log.WithField("mod", "sim")

// Source is a stream of uniform floats in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Simulator runs day granular block-win trials. It holds no state between
// runs other than the entropy it consumes from Source, so a Simulator with
// a seeded source is fully deterministic. A Simulator is not safe for
// concurrent use, give each goroutine its own.
type Simulator struct {
	Source Source
	Policy ProbabilityPolicy
}

// New returns a simulator that clamps the trial probability. A nil source
// falls back to a time seeded one.
func New(src Source) *Simulator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{Source: src, Policy: ClampProbability}
}

// Simulate runs the config and returns only the totals.
func (s *Simulator) Simulate(cfg Config) (AggregateResult, error) {
	_, total, err := s.Run(cfg)
	return total, err
}

// Run simulates days 1 through cfg.Days-1 and returns every daily record
// alongside the totals.
func (s *Simulator) Run(cfg Config) ([]DailyRecord, AggregateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, AggregateResult{}, err
	}

	records := make([]DailyRecord, 0, cfg.SimulatedDays())
	var total AggregateResult
	for day := 1; day < cfg.Days; day++ {
		r, err := s.day(cfg, day)
		if err != nil {
			return nil, AggregateResult{}, err
		}
		records = append(records, r)
		total.Add(r)
	}

	simulatedDays.Add(float64(total.TotalDays))
	blocksMined.Add(float64(total.TotalBlocksMined))
	simLog.WithFields(total.LogFields()).Debug("simulation complete")
	return records, total, nil
}

func (s *Simulator) day(cfg Config, day int) (DailyRecord, error) {
	n, err := cfg.trials(day)
	if err != nil {
		return DailyRecord{}, err
	}
	p, err := cfg.probability(day, s.Policy)
	if err != nil {
		return DailyRecord{}, err
	}

	mined := 0
	for i := 0; i < n; i++ {
		if s.Source.Float64() < p {
			mined++
		}
	}

	reward, err := rate("reward", cfg.Reward, day)
	if err != nil {
		return DailyRecord{}, err
	}
	price, err := rate("ether price", cfg.EtherPrice, day)
	if err != nil {
		return DailyRecord{}, err
	}

	r := DailyRecord{
		Day:         day,
		BlocksMined: mined,
		Reward:      reward * float64(mined),
		EtherPrice:  price,
	}
	r.RewardValue = r.Reward * r.EtherPrice
	return r, nil
}
