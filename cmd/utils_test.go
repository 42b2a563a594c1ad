package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/difficulty"
	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	"github.com/FactomWyomingEntity/prosper-roi/profitability"
	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, content string) *viper.Viper {
	conf := viper.New()
	config.SetDefaults(conf)
	conf.SetConfigType("toml")
	require.NoError(t, conf.ReadConfig(bytes.NewBufferString(content)))
	return conf
}

// seriesOf builds n points ending on day 0.
func seriesOf(f func(day int) float64, n int) forecast.TimeSeries {
	s := make(forecast.TimeSeries, n)
	for i := range s {
		day := i - (n - 1)
		s[i] = forecast.Point{Day: day, Value: f(day)}
	}
	return s
}

func linearSeries(n int) forecast.TimeSeries {
	return seriesOf(func(day int) float64 { return 2*float64(day) + 100 }, n)
}

func TestPickModel(t *testing.T) {
	series := linearSeries(10)

	t.Run("linear", func(t *testing.T) {
		require := require.New(t)
		m, err := pickModel(series, 0, "Linear")
		require.NoError(err)
		require.Equal("linear", m.Name)
		require.NotNil(m.Models)
		require.InDelta(110, m.Rate(5), 1e-6)
	})

	t.Run("best", func(t *testing.T) {
		require := require.New(t)
		m, err := pickModel(series, 0, ModelBest)
		require.NoError(err)
		require.InDelta(1, m.Models.Best().RSquared(), 1e-9)
	})

	t.Run("constant", func(t *testing.T) {
		require := require.New(t)
		m, err := pickModel(series, 0, ModelConstant)
		require.NoError(err)
		require.Nil(m.Models)
		require.Equal(100.0, m.Rate(1))
		require.Equal(100.0, m.Rate(300))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := pickModel(series, 0, "cubic")
		require.Error(t, err)
	})

	t.Run("short window", func(t *testing.T) {
		_, err := pickModel(series, 20, "linear")
		var insufficient *forecast.InsufficientDataError
		require.True(t, errors.As(err, &insufficient))
	})

	t.Run("exponential on non-positive history", func(t *testing.T) {
		require := require.New(t)
		dipping := seriesOf(func(day int) float64 { return 2*float64(day) + 3 }, 6)

		m, err := pickModel(dipping, 0, "linear")
		require.NoError(err)
		require.InDelta(13, m.Rate(5), 1e-9)

		_, err = pickModel(dipping, 0, "exponential")
		var fe *forecast.FittingError
		require.True(errors.As(err, &fe), "exp fitting error, found %v", err)

		m, err = pickModel(dipping, 0, ModelBest)
		require.NoError(err)
		require.NotEqual("exponential", m.Name)
	})

	t.Run("empty constant", func(t *testing.T) {
		_, err := pickModel(nil, 0, ModelConstant)
		require.Error(t, err)
	})
}

func TestInvestmentFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		require := require.New(t)
		conf := testConfig(t, "")
		inv, err := investmentFromConfig(conf)
		require.NoError(err)
		require.Equal("40000", inv.TotalInvestment.String())
		require.Equal("0.15", inv.FeeRate.String())
		require.Equal("0.3", inv.AssetResellPercentage.String())
		require.Equal("6.75", inv.ManagementFeeFactor.String())
		require.InDelta(profitability.PricePerHash(300, true), inv.CostPerHash, 1e-12)

		// The investment buys the pool its hash rate
		require.Equal(inv.PoolHashRate(), poolHashRate(conf, inv))
	})

	t.Run("hashrate override", func(t *testing.T) {
		require := require.New(t)
		conf := testConfig(t, "[Pool]\nHashRate = 5e9\n")
		inv, err := investmentFromConfig(conf)
		require.NoError(err)
		require.Equal(difficulty.HashRate(5e9), poolHashRate(conf, inv))
	})

	t.Run("bad fee", func(t *testing.T) {
		_, err := investmentFromConfig(testConfig(t, "[Pool]\nFeeRate = \"fifteen\"\n"))
		require.Error(t, err)
	})

	t.Run("fee out of range", func(t *testing.T) {
		_, err := investmentFromConfig(testConfig(t, "[Pool]\nFeeRate = \"1.5\"\n"))
		require.Error(t, err)
	})
}

func TestSimConfig(t *testing.T) {
	require := require.New(t)
	conf := testConfig(t, `
[Simulation]
Days = 100
BlockReward = 2
PriceFrom = 200
PriceTo = 100
BlockTime = "15s"
`)

	cfg := simConfig(conf, func(int) float64 { return 1e12 }, difficulty.HashRate(1e9))
	require.NoError(cfg.Validate())
	require.Equal(100, cfg.Days)
	require.Equal(99, cfg.SimulatedDays())
	require.Equal(1e9, cfg.PoolHashRate(10))
	require.Equal(2.0, cfg.Reward(10))
	require.Equal(5760.0, cfg.BlocksAddedToChain(1))
	require.Equal(150.0, cfg.EtherPrice(50))
	require.Equal(0.0, cfg.EtherPrice(100))

	require.Equal(1e12, cfg.NetworkHashRate(10))

	require.Equal(simulation.ClampProbability, policy(conf))
	conf.Set(config.ConfigSimStrict, true)
	require.Equal(simulation.StrictProbability, policy(conf))
}

func TestSeed(t *testing.T) {
	require := require.New(t)
	conf := testConfig(t, "[Simulation]\nSeed = 42\n")
	require.Equal(int64(42), seed(conf))

	a, err := newSimulator(conf, 42).Simulate(simConfig(conf, func(int) float64 { return 2e9 }, difficulty.HashRate(1e9)))
	require.NoError(err)
	b, err := newSimulator(conf, 42).Simulate(simConfig(conf, func(int) float64 { return 2e9 }, difficulty.HashRate(1e9)))
	require.NoError(err)
	require.Equal(a, b)

	require.NotZero(seed(testConfig(t, "")))
}

func TestSimConfig_NetworkScale(t *testing.T) {
	require := require.New(t)
	conf := testConfig(t, "[Forecast]\nNetworkScale = 1.5\n")
	cfg := simConfig(conf, func(day int) float64 { return float64(day) * 1e9 }, difficulty.HashRate(1e9))
	require.Equal(15e9, cfg.NetworkHashRate(10))
}

func TestExpectedBlocks(t *testing.T) {
	require := require.New(t)
	conf := testConfig(t, "[Simulation]\nDays = 11\nBlockTime = \"20s\"\n")

	// A quarter of the network over 10 days of 4320 blocks
	cfg := simConfig(conf, func(int) float64 { return 4e12 }, difficulty.HashRate(1e12))
	require.InDelta(10800, expectedBlocks(cfg, difficulty.DefaultBlockTime), 1e-6)

	// The pool's share never exceeds the whole network
	cfg = simConfig(conf, func(int) float64 { return 1e12 }, difficulty.HashRate(4e12))
	require.InDelta(43200, expectedBlocks(cfg, difficulty.DefaultBlockTime), 1e-6)
}

func TestReferenceGPUs(t *testing.T) {
	require := require.New(t)
	require.Equal(float64(6), referenceGPUs(difficulty.MegaHash(150)))
	require.Zero(referenceGPUs(0))
}
