package difficulty

import (
	"github.com/dustin/go-humanize"
)

// HashRate is in hashes per second. Keeping it typed stops a GH/s value
// from being mixed with an H/s one:
//		rate := difficulty.MegaHash(80473.3)
//		fmt.Println(rate) // 80.4733 GH/s
//
type HashRate float64

func (h HashRate) Float64() float64 {
	return float64(h)
}

// In returns the rate expressed in the given unit, e.g. h.In(Giga)
func (h HashRate) In(unit float64) float64 {
	return float64(h) / unit
}

func (h HashRate) String() string {
	return humanize.SI(float64(h), "H/s")
}
