package simulation_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/FactomWyomingEntity/prosper-roi/rates"
	. "github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed cycle of uniforms
type scripted struct {
	values []float64
	i      int
}

func (s *scripted) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func config(ratio, blocks float64, days int) Config {
	return Config{
		NetworkHashRate:    rates.Constant(1e12),
		PoolHashRate:       rates.Constant(ratio * 1e12),
		EtherPrice:         rates.Constant(100),
		Reward:             rates.Constant(2),
		BlocksAddedToChain: rates.Constant(blocks),
		Days:               days,
	}
}

func TestSimulator_ScriptedAggregation(t *testing.T) {
	require := require.New(t)
	src := &scripted{values: []float64{0.1, 0.6, 0.7, 0.2, 0.55, 0.3, 0.9, 0.05, 0.51, 0.45, 0.8, 0.99, 0.25}}

	records, total, err := New(src).Run(config(0.5, 10, 5))
	require.NoError(err)
	require.Len(records, 4)

	exp := []int{5, 4, 5, 5}
	for i, r := range records {
		require.Equal(i+1, r.Day)
		require.Equal(exp[i], r.BlocksMined, "day %d", r.Day)
		require.Equal(2*float64(exp[i]), r.Reward)
		require.Equal(float64(100), r.EtherPrice)
		require.Equal(r.Reward*r.EtherPrice, r.RewardValue)
	}

	require.Equal(4, total.TotalDays)
	require.Equal(int64(19), total.TotalBlocksMined)
	require.Equal(float64(38), total.TotalReward)
	require.Equal(float64(3800), total.TotalRewardValue)
	require.Equal(40, src.i, "one draw per trial")
}

func TestSimulator_SeededAggregation(t *testing.T) {
	require := require.New(t)
	const seed = 42

	// Work out the expected outcome from the same stream up front
	ref := rand.New(rand.NewSource(seed))
	var expTotal int64
	var exp []int
	for day := 1; day < 5; day++ {
		mined := 0
		for i := 0; i < 10; i++ {
			if ref.Float64() < 0.5 {
				mined++
			}
		}
		exp = append(exp, mined)
		expTotal += int64(mined)
	}

	records, total, err := New(rand.New(rand.NewSource(seed))).Run(config(0.5, 10, 5))
	require.NoError(err)
	for i, r := range records {
		require.Equal(exp[i], r.BlocksMined)
	}
	require.Equal(expTotal, total.TotalBlocksMined)
}

func TestSimulator_Deterministic(t *testing.T) {
	require := require.New(t)
	cfg := Config{
		NetworkHashRate:    func(day int) float64 { return 1e12 + float64(day)*1e9 },
		PoolHashRate:       rates.Constant(3e10),
		EtherPrice:         rates.Ramp(300, 50, 360),
		Reward:             rates.Constant(5.07),
		BlocksAddedToChain: rates.Constant(86400 / 20.0),
		Days:               360,
	}

	a, err := New(rand.New(rand.NewSource(7))).Simulate(cfg)
	require.NoError(err)
	b, err := New(rand.New(rand.NewSource(7))).Simulate(cfg)
	require.NoError(err)

	require.Equal(a, b)
	require.Equal(math.Float64bits(a.TotalRewardValue), math.Float64bits(b.TotalRewardValue))
	require.True(a.TotalBlocksMined > 0)
}

func TestSimulator_DegenerateProbability(t *testing.T) {
	t.Run("ratio 1 mines every block", func(t *testing.T) {
		require := require.New(t)
		blocks := func(day int) float64 { return float64(day * 3) }
		cfg := config(1, 0, 20)
		cfg.BlocksAddedToChain = blocks

		for seed := int64(0); seed < 5; seed++ {
			records, total, err := New(rand.New(rand.NewSource(seed))).Run(cfg)
			require.NoError(err)
			var sum int64
			for _, r := range records {
				require.Equal(r.Day*3, r.BlocksMined)
				sum += int64(r.BlocksMined)
			}
			require.Equal(sum, total.TotalBlocksMined)
		}
	})

	t.Run("ratio 0 mines nothing", func(t *testing.T) {
		require := require.New(t)
		// A source that always returns 0 is the worst case for a <= check
		src := &scripted{values: []float64{0}}
		records, total, err := New(src).Run(config(0, 100, 30))
		require.NoError(err)
		for _, r := range records {
			require.Zero(r.BlocksMined)
			require.Zero(r.RewardValue)
		}
		require.Zero(total.TotalBlocksMined)
		require.Zero(total.TotalRewardValue)
	})

	t.Run("fractional block counts round up", func(t *testing.T) {
		require := require.New(t)
		records, _, err := New(nil).Run(config(1, 4.2, 3))
		require.NoError(err)
		for _, r := range records {
			require.Equal(5, r.BlocksMined)
		}
	})
}

func TestSimulator_HorizonExcludesFinalDay(t *testing.T) {
	vecs := []struct {
		Days     int
		Expected int
	}{
		{Days: 1, Expected: 0},
		{Days: 2, Expected: 1},
		{Days: 5, Expected: 4},
		{Days: 360, Expected: 359},
	}

	for _, v := range vecs {
		require := require.New(t)
		var seen []int
		cfg := config(1, 1, v.Days)
		cfg.EtherPrice = func(day int) float64 {
			seen = append(seen, day)
			return 1
		}

		records, total, err := New(nil).Run(cfg)
		require.NoError(err)
		require.Len(records, v.Expected)
		require.Equal(v.Expected, total.TotalDays)
		require.Equal(v.Expected, cfg.SimulatedDays())
		for i, day := range seen {
			require.Equal(i+1, day)
		}
		if v.Expected > 0 {
			require.Equal(v.Days-1, records[len(records)-1].Day)
		}
	}
}

func TestSimulator_ProbabilityPolicy(t *testing.T) {
	t.Run("clamp", func(t *testing.T) {
		require := require.New(t)
		records, _, err := New(nil).Run(config(2.5, 10, 4))
		require.NoError(err)
		for _, r := range records {
			require.Equal(10, r.BlocksMined)
		}

		records, _, err = New(nil).Run(config(-1, 10, 4))
		require.NoError(err)
		for _, r := range records {
			require.Equal(0, r.BlocksMined)
		}
	})

	t.Run("strict", func(t *testing.T) {
		require := require.New(t)
		sim := New(nil)
		sim.Policy = StrictProbability
		_, _, err := sim.Run(config(2.5, 10, 4))
		var pe *InvalidProbabilityError
		require.True(errors.As(err, &pe))
		require.Equal(1, pe.Day)
		require.Equal(2.5, pe.P)

		_, _, err = sim.Run(config(0.25, 10, 4))
		require.NoError(err)
	})
}

func TestSimulator_ConfigurationErrors(t *testing.T) {
	type tVec struct {
		Name   string
		Mutate func(c *Config)
	}

	vecs := []tVec{
		{"zero days", func(c *Config) { c.Days = 0 }},
		{"negative days", func(c *Config) { c.Days = -10 }},
		{"missing network", func(c *Config) { c.NetworkHashRate = nil }},
		{"missing reward", func(c *Config) { c.Reward = nil }},
		{"zero network", func(c *Config) { c.NetworkHashRate = rates.Constant(0) }},
		{"undefined price", func(c *Config) {
			c.EtherPrice = func(day int) float64 {
				if day == 3 {
					return math.NaN()
				}
				return 1
			}
		}},
		{"negative blocks", func(c *Config) { c.BlocksAddedToChain = rates.Constant(-1) }},
		{"block count overflows", func(c *Config) { c.BlocksAddedToChain = rates.Constant(1e19) }},
		{"infinite pool", func(c *Config) { c.PoolHashRate = rates.Constant(math.Inf(1)) }},
	}

	for _, v := range vecs {
		t.Run(v.Name, func(t *testing.T) {
			require := require.New(t)
			cfg := config(0.5, 10, 10)
			v.Mutate(&cfg)
			_, err := New(nil).Simulate(cfg)
			var ce *ConfigurationError
			require.True(errors.As(err, &ce), "exp configuration error, found %v", err)
		})
	}
}

func TestSimulator_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		// Fractional block counts round up to whole trials
		cfg := config(r.Float64(), r.Float64()*50, r.Intn(40)+1)
		records, total, err := New(rand.New(rand.NewSource(int64(i)))).Run(cfg)
		if err != nil {
			t.Fatal(err)
		}

		var sum int64
		for _, rec := range records {
			trials := math.Ceil(cfg.BlocksAddedToChain(rec.Day))
			if rec.BlocksMined < 0 || float64(rec.BlocksMined) > trials {
				t.Errorf("day %d mined %d of %.0f", rec.Day, rec.BlocksMined, trials)
			}
			sum += int64(rec.BlocksMined)
		}
		if sum != total.TotalBlocksMined {
			t.Errorf("exp total %d, found %d", sum, total.TotalBlocksMined)
		}
		if Aggregate(records) != total {
			t.Errorf("aggregate of records differs from running total")
		}
	}
}
