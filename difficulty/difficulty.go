package difficulty

import (
	"math"
	"time"
)

const (
	// DefaultBlockTime is the average Ethereum block time used when no other
	// is configured.
	DefaultBlockTime = 20 * time.Second

	// DefaultGPUHashRate is the rate of a single reference GPU, 25 MH/s.
	DefaultGPUHashRate = 25 * Mega

	Day = 24 * time.Hour
)

// Hash rate prefixes, in hashes per second
const (
	Mega float64 = 1e6
	Giga float64 = 1e9
	Tera float64 = 1e12
)

func MegaHash(x float64) HashRate { return HashRate(x * Mega) }

// GPUHash is the hash rate of n reference GPUs.
func GPUHash(n float64) HashRate {
	return HashRate(n * DefaultGPUHashRate)
}

// BlocksPerDay is the number of blocks added to the chain in a day given the
// average block time.
//
//	blocks = 86400s / blocktime
//
func BlocksPerDay(blockTime time.Duration) float64 {
	if blockTime <= 0 {
		return 0
	}
	return Day.Seconds() / blockTime.Seconds()
}

// DifficultyFromHashRate is the difficulty that keeps the average block time
// at `blockTime` for a network hashing at `rate`. On average `difficulty`
// hashes are needed to find one block, so
//
//	difficulty = H * blocktime
//
func DifficultyFromHashRate(rate HashRate, blockTime time.Duration) float64 {
	return rate.Float64() * blockTime.Seconds()
}

// ExpectedBlocks is the mean number of blocks a pool with `pool` hash rate
// wins over `dur` against a `network` rate. It is the expectation of the
// daily binomial trials the simulator draws, so the pool's share is clamped
// into [0,1] the same way.
func ExpectedBlocks(pool, network HashRate, blockTime, dur time.Duration) float64 {
	if network <= 0 || blockTime <= 0 {
		return 0
	}
	share := math.Max(0, math.Min(1, pool.Float64()/network.Float64()))
	return share * (dur.Seconds() / blockTime.Seconds())
}
