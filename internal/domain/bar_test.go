package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBar(ts int64, open, close float64) *Bar {
	lo, hi := open, close
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Bar{
		Timestamp:        ts,
		Open:             open,
		High:             hi + 10,
		Low:              lo - 10,
		Close:            close,
		Volume:           1500,
		Funding:          0.0001,
		Borrow:           0.00003,
		LiquidationScore: 0.5,
		Depeg:            0.0002,
		OpenInterest:     1_000_000,
	}
}

func TestBar_Validate(t *testing.T) {
	require.NoError(t, validBar(1704067200, 42000, 42100).Validate())
	require.NoError(t, validBar(1704067200, 42100, 42000).Validate())
}

func TestBar_Validate_ZeroPadded(t *testing.T) {
	// Bars adapted from vendor data carry zeros in the derived fields.
	b := &Bar{Timestamp: 1704067200, Open: 42000, High: 42200, Low: 41900, Close: 42100, Volume: 12.5}
	require.NoError(t, b.Validate())
}

func TestBar_Validate_OHLCOrder(t *testing.T) {
	b := validBar(1704067200, 42000, 42100)
	b.High = 42050 // below close
	err := b.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOHLCOrder))

	b = validBar(1704067200, 42000, 42100)
	b.Low = 42050 // above open
	assert.True(t, errors.Is(b.Validate(), ErrOHLCOrder))
}

func TestBar_Validate_Bounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Bar)
	}{
		{"funding above clamp", func(b *Bar) { b.Funding = 0.004 }},
		{"funding below clamp", func(b *Bar) { b.Funding = -0.004 }},
		{"depeg above clamp", func(b *Bar) { b.Depeg = 0.02 }},
		{"negative borrow", func(b *Bar) { b.Borrow = -0.0001 }},
		{"negative liquidation score", func(b *Bar) { b.LiquidationScore = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBar(1704067200, 42000, 42100)
			tc.mutate(b)
			assert.True(t, errors.Is(b.Validate(), ErrOutOfBounds))
		})
	}
}

func TestValidateSeries(t *testing.T) {
	bars := []*Bar{
		validBar(1704067200, 42000, 42100),
		validBar(1704067500, 42100, 42050),
		validBar(1704067800, 42050, 42200),
	}
	require.NoError(t, ValidateSeries(bars, 300))
	require.NoError(t, ValidateSeries(nil, 300))
}

func TestValidateSeries_Discontinuity(t *testing.T) {
	bars := []*Bar{
		validBar(1704067200, 42000, 42100),
		validBar(1704067500, 42105, 42050), // open != prior close
	}
	assert.True(t, errors.Is(ValidateSeries(bars, 300), ErrDiscontinuity))
}

func TestValidateSeries_TimestampGap(t *testing.T) {
	bars := []*Bar{
		validBar(1704067200, 42000, 42100),
		validBar(1704067860, 42100, 42050), // 660s gap on 300s bars
	}
	assert.True(t, errors.Is(ValidateSeries(bars, 300), ErrTimestampOrder))
}
