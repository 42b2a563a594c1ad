package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/datasource"
	"github.com/FactomWyomingEntity/prosper-roi/difficulty"
	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	"github.com/FactomWyomingEntity/prosper-roi/profitability"
	"github.com/FactomWyomingEntity/prosper-roi/rates"
	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// ModelConstant holds the newest observed hash rate flat for the whole horizon
const ModelConstant = "constant"

// ModelBest picks the fitted model with the highest r²
const ModelBest = "best"

// networkModel is the network hash rate trend handed to the simulator
type networkModel struct {
	Name   string
	Rate   rates.RateFunc
	Models *forecast.Models // nil for the constant model
	Series forecast.TimeSeries
}

// loadNetworkModel pulls the hash rate history and fits the configured trend.
func loadNetworkModel(ctx context.Context, conf *viper.Viper) (*networkModel, error) {
	ds, err := datasource.NewDataSource(conf.GetString(config.ConfigDataSourceName), conf)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, conf.GetDuration(config.ConfigDataSourceTimeout))
	defer cancel()
	series, err := ds.FetchHashRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ds.Name(), err)
	}

	return pickModel(series, conf.GetInt(config.ConfigForecastLookback), conf.GetString(config.ConfigForecastModel))
}

// pickModel fits the series and selects the named trend.
func pickModel(series forecast.TimeSeries, lookback int, name string) (*networkModel, error) {
	name = strings.ToLower(name)
	if name == ModelConstant {
		last, ok := series.Last()
		if !ok {
			return nil, &forecast.InsufficientDataError{Have: 0, Need: 1}
		}
		return &networkModel{Name: name, Rate: rates.Constant(last.Value), Series: series}, nil
	}

	models, err := forecast.Fit(series, lookback)
	if err != nil {
		return nil, err
	}

	var m forecast.Model
	if name == ModelBest {
		m = models.Best()
	} else {
		m, err = models.ByName(name)
		if err != nil {
			return nil, err
		}
	}

	return &networkModel{
		Name:   string(m.Kind()),
		Rate:   rates.FromModel(m),
		Models: models,
		Series: series,
	}, nil
}

// investmentFromConfig reads the cost side of the pool.
func investmentFromConfig(conf *viper.Viper) (profitability.Investment, error) {
	var inv profitability.Investment
	var err error

	inv.TotalInvestment = decimal.NewFromFloat(conf.GetFloat64(config.ConfigInvestment))
	inv.CostPerHash = profitability.PricePerHash(conf.GetFloat64(config.ConfigGPUCost), conf.GetBool(config.ConfigOverclocked))

	for _, d := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{config.ConfigResalePercent, &inv.AssetResellPercentage},
		{config.ConfigPoolFeeRate, &inv.FeeRate},
		{config.ConfigMgmtFactor, &inv.ManagementFeeFactor},
	} {
		*d.dst, err = decimal.NewFromString(conf.GetString(d.key))
		if err != nil {
			return inv, fmt.Errorf("%s: %w", d.key, err)
		}
	}

	return inv, inv.Validate()
}

// poolHashRate is the configured pool hash rate, or what the investment buys
// when none is set.
func poolHashRate(conf *viper.Viper, inv profitability.Investment) difficulty.HashRate {
	if hr := conf.GetFloat64(config.ConfigPoolHashRate); hr > 0 {
		return difficulty.HashRate(hr)
	}
	return inv.PoolHashRate()
}

// simConfig wires the scaled network trend, pool size, price ramp, reward and block
// time into a simulation config.
func simConfig(conf *viper.Viper, network rates.RateFunc, pool difficulty.HashRate) simulation.Config {
	days := conf.GetInt(config.ConfigSimDays)
	return simulation.Config{
		NetworkHashRate:    rates.Scale(network, conf.GetFloat64(config.ConfigForecastScale)),
		PoolHashRate:       rates.Constant(pool.Float64()),
		EtherPrice:         rates.Ramp(conf.GetFloat64(config.ConfigSimPriceFrom), conf.GetFloat64(config.ConfigSimPriceTo), days),
		Reward:             rates.Constant(conf.GetFloat64(config.ConfigSimReward)),
		BlocksAddedToChain: rates.Constant(difficulty.BlocksPerDay(conf.GetDuration(config.ConfigSimBlockTime))),
		Days:               days,
	}
}

// expectedBlocks is the mean number of blocks the config wins over its
// simulated days, before any randomness.
func expectedBlocks(cfg simulation.Config, blockTime time.Duration) float64 {
	var sum float64
	for day := 1; day < cfg.Days; day++ {
		sum += difficulty.ExpectedBlocks(
			difficulty.HashRate(cfg.PoolHashRate(day)),
			difficulty.HashRate(cfg.NetworkHashRate(day)),
			blockTime, difficulty.Day)
	}
	return sum
}

// referenceGPUs is how many reference GPUs hash at h.
func referenceGPUs(h difficulty.HashRate) float64 {
	return h.In(difficulty.GPUHash(1).Float64())
}

func policy(conf *viper.Viper) simulation.ProbabilityPolicy {
	if conf.GetBool(config.ConfigSimStrict) {
		return simulation.StrictProbability
	}
	return simulation.ClampProbability
}

// seed returns the configured seed, or a clock based one when it is 0.
func seed(conf *viper.Viper) int64 {
	if s := conf.GetInt64(config.ConfigSimSeed); s != 0 {
		return s
	}
	return time.Now().UnixNano()
}

func newSimulator(conf *viper.Viper, seed int64) *simulation.Simulator {
	sim := simulation.New(rand.New(rand.NewSource(seed)))
	sim.Policy = policy(conf)
	return sim
}
