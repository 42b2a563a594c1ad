package profitability

import (
	"fmt"

	"github.com/FactomWyomingEntity/prosper-roi/difficulty"
	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var hundred = decimal.New(100, 0)

// Investment is the static cost side of a pool.
type Investment struct {
	TotalInvestment decimal.Decimal
	// CostPerHash is dollars per MH/s
	CostPerHash float64
	// AssetResellPercentage is the share of the hardware cost recovered
	// when selling it at the end of the horizon
	AssetResellPercentage decimal.Decimal
	// FeeRate is the cut the pool operator takes from mined value
	FeeRate decimal.Decimal
	// ManagementFeeFactor scales the management fee off the fee cut
	ManagementFeeFactor decimal.Decimal
}

// PoolHashRate is the hash rate the investment buys.
func (i Investment) PoolHashRate() difficulty.HashRate {
	if i.CostPerHash <= 0 {
		return 0
	}
	total, _ := i.TotalInvestment.Float64()
	return difficulty.MegaHash(total / i.CostPerHash)
}

func (i Investment) Validate() error {
	if i.TotalInvestment.Sign() <= 0 {
		return fmt.Errorf("total investment must be positive, found %s", i.TotalInvestment)
	}
	if i.CostPerHash <= 0 {
		return fmt.Errorf("cost per hash must be positive, found %f", i.CostPerHash)
	}
	if i.FeeRate.Sign() < 0 || i.FeeRate.Cmp(decimal.New(1, 0)) > 0 {
		return fmt.Errorf("fee rate must be within [0,1], found %s", i.FeeRate)
	}
	return nil
}

// Report is the return on an investment over one simulated horizon.
type Report struct {
	PoolHashRate    difficulty.HashRate
	TotalInvestment decimal.Decimal
	AssetValue      decimal.Decimal
	MinedValue      decimal.Decimal
	PoolFee         decimal.Decimal
	NetMinedValue   decimal.Decimal
	ManagementFee   decimal.Decimal
	// ROI is in percent
	ROI decimal.Decimal
}

// Evaluate computes the return of the investment given the simulated totals.
//
//	ROI = 100 * (asset + mined*(1-fee) - investment) / investment
//
func Evaluate(inv Investment, res simulation.AggregateResult) (*Report, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	r := new(Report)
	r.PoolHashRate = inv.PoolHashRate()
	r.TotalInvestment = inv.TotalInvestment
	r.AssetValue = inv.TotalInvestment.Mul(inv.AssetResellPercentage)
	r.MinedValue = decimal.NewFromFloat(res.TotalRewardValue)
	r.PoolFee = r.MinedValue.Mul(inv.FeeRate)
	r.NetMinedValue = r.MinedValue.Sub(r.PoolFee)
	r.ManagementFee = r.PoolFee.Mul(inv.ManagementFeeFactor)

	gain := r.AssetValue.Add(r.NetMinedValue).Sub(inv.TotalInvestment)
	r.ROI = gain.Mul(hundred).Div(inv.TotalInvestment).Round(4)
	return r, nil
}

func (r *Report) LogFields() log.Fields {
	return log.Fields{
		"pool_hashrate":  r.PoolHashRate.String(),
		"investment":     dollars(r.TotalInvestment),
		"asset_value":    dollars(r.AssetValue),
		"mined_value":    dollars(r.MinedValue),
		"net_mined":      dollars(r.NetMinedValue),
		"management_fee": dollars(r.ManagementFee),
		"roi":            r.ROI.StringFixed(2) + "%",
	}
}

func dollars(d decimal.Decimal) string {
	f, _ := d.Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}
