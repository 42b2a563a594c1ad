package database

import (
	"time"

	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/jinzhu/gorm"
)

const (
	RunSingle = "single"
	RunBatch  = "batch"
)

// SimulationRun is one recorded simulate or batch invocation
type SimulationRun struct {
	Model

	Kind         string `gorm:"index:kind"` // single or batch
	NetworkModel string                    // linear, quadratic, exponential or constant
	Days         int
	Seed         int64
	Runs         int
	PoolHashRate float64 // H/s
	RecordedAt   time.Time
	Strict       bool // ran with StrictProbability

	TotalBlocksMined int64
	TotalReward      float64
	TotalRewardValue float64

	// Batch only
	StdDevRewardValue float64
	P05RewardValue    float64
	P95RewardValue    float64

	// ROI in percent, stored as a string to keep the decimal exact
	ROI string
}

// NewSingleRun builds a record from one simulation's totals.
func NewSingleRun(res simulation.AggregateResult) *SimulationRun {
	return &SimulationRun{
		Kind:             RunSingle,
		Runs:             1,
		TotalBlocksMined: res.TotalBlocksMined,
		TotalReward:      res.TotalReward,
		TotalRewardValue: res.TotalRewardValue,
	}
}

// NewBatchRun builds a record from a batch. Totals are the batch means.
func NewBatchRun(res *simulation.BatchResult) *SimulationRun {
	return &SimulationRun{
		Kind:              RunBatch,
		Runs:              len(res.Runs),
		TotalBlocksMined:  int64(res.MeanBlocksMined),
		TotalRewardValue:  res.MeanRewardValue,
		StdDevRewardValue: res.StdDevRewardValue,
		P05RewardValue:    res.P05RewardValue,
		P95RewardValue:    res.P95RewardValue,
	}
}

func (run *SimulationRun) BeforeCreate(scope *gorm.Scope) error {
	run.RecordedAt = time.Now()
	return nil
}
