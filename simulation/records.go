package simulation

import (
	"fmt"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// DailyRecord is the outcome of one simulated day.
type DailyRecord struct {
	Day         int     `json:"day"`
	BlocksMined int     `json:"blocksmined"`
	Reward      float64 `json:"reward"`      // Reward per block * blocks mined
	EtherPrice  float64 `json:"etherprice"`  // Price used for the day
	RewardValue float64 `json:"rewardvalue"` // Reward * EtherPrice
}

// AggregateResult is the running total over daily records, folded in day
// order.
type AggregateResult struct {
	TotalDays        int     `json:"totaldays"`
	TotalBlocksMined int64   `json:"totalblocksmined"`
	TotalReward      float64 `json:"totalreward"`
	TotalRewardValue float64 `json:"totalrewardvalue"`
}

// Add folds the next day's record into the totals. Records must be added in
// day order for the float sums to be reproducible.
func (a *AggregateResult) Add(r DailyRecord) {
	a.TotalDays++
	a.TotalBlocksMined += int64(r.BlocksMined)
	a.TotalReward += r.Reward
	a.TotalRewardValue += r.RewardValue
}

// Aggregate folds records in the order given.
func Aggregate(records []DailyRecord) AggregateResult {
	var a AggregateResult
	for _, r := range records {
		a.Add(r)
	}
	return a
}

func (a AggregateResult) LogFields() log.Fields {
	return log.Fields{
		"days":         a.TotalDays,
		"blocks_mined": humanize.Comma(a.TotalBlocksMined),
		"reward":       humanize.FormatFloat("#,###.####", a.TotalReward),
		"reward_value": fmt.Sprintf("$%s", humanize.FormatFloat("#,###.##", a.TotalRewardValue)),
	}
}
