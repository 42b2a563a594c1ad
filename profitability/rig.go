package profitability

import (
	"github.com/shopspring/decimal"
)

// Rig is a single mining frame and its parts. Hash rates are per GPU in MH/s.
type Rig struct {
	GPUs                  int
	GPUCost               decimal.Decimal
	HashPerGPU            float64
	OverclockedHashPerGPU float64

	Motherboard decimal.Decimal
	RAM         decimal.Decimal
	PowerSupply decimal.Decimal
	Rack        decimal.Decimal
	CPU         decimal.Decimal
	Other       decimal.Decimal
}

// DefaultRig is a 12 GPU frame on a BIOSTAR TB250-BTC PRO board.
func DefaultRig(gpuCost float64) Rig {
	return Rig{
		GPUs:                  12,
		GPUCost:               decimal.NewFromFloat(gpuCost),
		HashPerGPU:            24,
		OverclockedHashPerGPU: 29,

		Motherboard: decimal.New(100, 0),
		RAM:         decimal.New(60, 0),
		PowerSupply: decimal.New(150, 0),
		Rack:        decimal.New(37, 0),
		CPU:         decimal.New(100, 0),
		Other:       decimal.New(36, 0),
	}
}

// TotalCost is the price of every part in the rig.
func (r Rig) TotalCost() decimal.Decimal {
	gpus := r.GPUCost.Mul(decimal.New(int64(r.GPUs), 0))
	return gpus.Add(r.Motherboard).Add(r.RAM).Add(r.PowerSupply).
		Add(r.Rack).Add(r.CPU).Add(r.Other)
}

// HashingPotential is the rig's rate in MH/s.
func (r Rig) HashingPotential(overclocked bool) float64 {
	per := r.HashPerGPU
	if overclocked {
		per = r.OverclockedHashPerGPU
	}
	return float64(r.GPUs) * per
}

// CostPerHash is dollars per MH/s. A rig with no hashing potential costs 0.
func (r Rig) CostPerHash(overclocked bool) float64 {
	potential := r.HashingPotential(overclocked)
	if potential == 0 {
		return 0
	}
	cost, _ := r.TotalCost().Div(decimal.NewFromFloat(potential)).Float64()
	return cost
}

// PricePerHash is CostPerHash of the default rig.
func PricePerHash(gpuCost float64, overclocked bool) float64 {
	return DefaultRig(gpuCost).CostPerHash(overclocked)
}
