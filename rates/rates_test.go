package rates_test

import (
	"testing"

	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	. "github.com/FactomWyomingEntity/prosper-roi/rates"
	"github.com/stretchr/testify/require"
)

func TestRamp(t *testing.T) {
	t.Run("boundaries", func(t *testing.T) {
		require := require.New(t)
		r := Ramp(0, 100, 10)
		require.Equal(float64(50), r(5))
		require.Equal(float64(0), r(10))
		require.Equal(float64(0), r(0))
		require.Equal(float64(0), r(11))
		require.Equal(float64(90), r(9))
	})

	t.Run("falling price", func(t *testing.T) {
		require := require.New(t)
		r := Ramp(300, 50, 360)
		require.Equal(float64(300), r(0))
		require.InDelta(175, r(180), 1e-9)
		require.Equal(float64(0), r(360))
	})

	t.Run("zero horizon is always past", func(t *testing.T) {
		require := require.New(t)
		r := Ramp(1, 2, 0)
		require.Equal(float64(0), r(0))
		require.Equal(float64(0), r(1))
	})
}

func TestFromModel(t *testing.T) {
	require := require.New(t)
	m := &forecast.Linear{Slope: 2, Intercept: 3}
	f := FromModel(m)
	require.InDelta(13, f(5), 1e-12)
	require.InDelta(3, f(0), 1e-12)

	g := Scale(f, 1000)
	require.InDelta(13000, g(5), 1e-9)
}

func TestConstant(t *testing.T) {
	require := require.New(t)
	c := Constant(5.07)
	for _, d := range []int{1, 100, 1e6} {
		require.Equal(5.07, c(d))
	}
}
