package domain

import (
	"errors"
	"fmt"
)

// Hard schema bounds shared by the generator and validation.
// These are calibration constants inherited from the original dataset
// tooling, not general market laws.
const (
	// MinClose is the price floor applied after each OU step.
	MinClose = 1000.0

	// MinVolume is the per-bar volume floor.
	MinVolume = 100.0

	// MaxFunding bounds the funding rate to [-MaxFunding, MaxFunding].
	MaxFunding = 0.003

	// MaxDepeg bounds the depeg field to [-MaxDepeg, MaxDepeg].
	MaxDepeg = 0.01

	// MinOpenInterest is the open-interest floor.
	MinOpenInterest = 100000
)

// Validation errors.
var (
	// ErrOHLCOrder is returned when low <= min(open, close) <= max(open, close) <= high does not hold.
	ErrOHLCOrder = errors.New("ohlc ordering violated")

	// ErrOutOfBounds is returned when a bounded field escapes its clamp/floor.
	ErrOutOfBounds = errors.New("field out of bounds")

	// ErrDiscontinuity is returned when a bar's open does not equal the prior close.
	ErrDiscontinuity = errors.New("open does not match prior close")

	// ErrTimestampOrder is returned when timestamps do not advance by exactly one bar duration.
	ErrTimestampOrder = errors.New("timestamps not advancing by bar duration")
)

// Bar is one row of the flat 11-column backtest input schema. Synthetic
// bars carry non-trivial derived fields; bars adapted from real vendor
// klines carry zeros there.
type Bar struct {
	Timestamp        int64   // Unix seconds, bar open time
	Open             float64 // open price
	High             float64 // intrabar high
	Low              float64 // intrabar low
	Close            float64 // close price
	Volume           float64 // base-asset volume
	Funding          float64 // perpetual funding rate, clamped
	Borrow           float64 // borrow rate, non-negative
	LiquidationScore float64 // liquidation pressure score, non-negative
	Depeg            float64 // stable-asset peg deviation, clamped
	OpenInterest     int64   // outstanding contract notional, floored
}

// Validate checks the per-bar schema invariants: OHLC ordering and the
// bound constraints on every bounded field. Zero-padded adapted bars
// (all derived fields and open interest zero) are accepted as well.
func (b *Bar) Validate() error {
	lo, hi := b.Open, b.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	if b.Low > lo || hi > b.High {
		return fmt.Errorf("%w: o=%f h=%f l=%f c=%f", ErrOHLCOrder, b.Open, b.High, b.Low, b.Close)
	}
	if b.Funding < -MaxFunding || b.Funding > MaxFunding {
		return fmt.Errorf("%w: funding %f", ErrOutOfBounds, b.Funding)
	}
	if b.Depeg < -MaxDepeg || b.Depeg > MaxDepeg {
		return fmt.Errorf("%w: depeg %f", ErrOutOfBounds, b.Depeg)
	}
	if b.Borrow < 0 {
		return fmt.Errorf("%w: borrow %f", ErrOutOfBounds, b.Borrow)
	}
	if b.LiquidationScore < 0 {
		return fmt.Errorf("%w: liquidation score %f", ErrOutOfBounds, b.LiquidationScore)
	}
	return nil
}

// ValidateSeries checks the cross-bar invariants over a generated or
// adapted series: every bar passes Validate, each open equals the prior
// close, and timestamps increase by exactly barSeconds.
func ValidateSeries(bars []*Bar, barSeconds int64) error {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		prev := bars[i-1]
		if b.Open != prev.Close {
			return fmt.Errorf("bar %d: %w: open=%f prior close=%f", i, ErrDiscontinuity, b.Open, prev.Close)
		}
		if b.Timestamp != prev.Timestamp+barSeconds {
			return fmt.Errorf("bar %d: %w: ts=%d prior=%d", i, ErrTimestampOrder, b.Timestamp, prev.Timestamp)
		}
	}
	return nil
}
