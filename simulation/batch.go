package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"gonum.org/v1/gonum/stat"
)

// BatchConfig controls a Monte-Carlo batch. Run i is seeded with Seed+i, so
// the results do not depend on the number of workers or their scheduling.
type BatchConfig struct {
	Runs    int
	Workers int // <= 0 uses GOMAXPROCS
	Seed    int64
	Policy  ProbabilityPolicy
}

// BatchResult holds every run, in run order, plus summary statistics over the
// total reward value.
type BatchResult struct {
	Runs []AggregateResult

	MeanRewardValue   float64
	StdDevRewardValue float64
	P05RewardValue    float64
	P50RewardValue    float64
	P95RewardValue    float64
	MeanBlocksMined   float64
}

// RunBatch runs cfg bc.Runs times over a pool of workers. The context is
// checked between runs, never inside one.
func RunBatch(ctx context.Context, cfg Config, bc BatchConfig) (*BatchResult, error) {
	if bc.Runs <= 0 {
		return nil, &ConfigurationError{Field: "runs", Reason: "must be positive"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := bc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > bc.Runs {
		workers = bc.Runs
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]AggregateResult, bc.Runs)
	completed := atomic.NewInt64(0)
	batchRunsTotal.Set(float64(bc.Runs))
	batchRunsCompleted.Set(0)

	var once sync.Once
	var firstErr error
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sim := &Simulator{
					Source: rand.New(rand.NewSource(bc.Seed + int64(i))),
					Policy: bc.Policy,
				}
				total, err := sim.Simulate(cfg)
				if err != nil {
					fail(fmt.Errorf("run %d: %w", i, err))
					continue
				}
				results[i] = total
				batchRunsCompleted.Set(float64(completed.Inc()))
			}
		}()
	}

feed:
	for i := 0; i < bc.Runs; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	// A cancel that lands after the last run finished does not discard it
	if completed.Load() < int64(bc.Runs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	res := summarize(results)
	simLog.WithFields(res.LogFields()).Info("batch complete")
	return res, nil
}

func summarize(runs []AggregateResult) *BatchResult {
	res := &BatchResult{Runs: runs}

	values := make([]float64, len(runs))
	blocks := make([]float64, len(runs))
	for i, r := range runs {
		values[i] = r.TotalRewardValue
		blocks[i] = float64(r.TotalBlocksMined)
	}

	res.MeanBlocksMined = stat.Mean(blocks, nil)
	if len(values) > 1 {
		res.MeanRewardValue, res.StdDevRewardValue = stat.MeanStdDev(values, nil)
	} else {
		res.MeanRewardValue = values[0]
	}

	sort.Float64s(values)
	res.P05RewardValue = stat.Quantile(0.05, stat.Empirical, values, nil)
	res.P50RewardValue = stat.Quantile(0.50, stat.Empirical, values, nil)
	res.P95RewardValue = stat.Quantile(0.95, stat.Empirical, values, nil)
	return res
}

func (b *BatchResult) LogFields() log.Fields {
	return log.Fields{
		"runs":        len(b.Runs),
		"mean_blocks": humanize.FormatFloat("#,###.##", b.MeanBlocksMined),
		"mean_value":  humanize.FormatFloat("#,###.##", b.MeanRewardValue),
		"stddev":      humanize.FormatFloat("#,###.##", b.StdDevRewardValue),
		"p05":         humanize.FormatFloat("#,###.##", b.P05RewardValue),
		"p50":         humanize.FormatFloat("#,###.##", b.P50RewardValue),
		"p95":         humanize.FormatFloat("#,###.##", b.P95RewardValue),
	}
}
