// Package synthetic generates multi-field synthetic market data by
// advancing coupled mean-reverting processes bar by bar.
package synthetic

import (
	"math"
	"math/rand"

	"synthetic-market-lab/internal/domain"
)

// Engine advances the simulation state one bar at a time. State is
// path-dependent: each bar's open is the previous bar's close, and the
// funding and open-interest processes carry over the same way, so bars
// must be produced strictly in order.
type Engine struct {
	params Params
	rng    *rand.Rand

	// Mutable state across bars.
	price   float64
	priceMu float64
	funding float64
	oi      float64
}

// NewEngine creates an engine seeded with the given random source. Two
// engines built from identically seeded sources produce identical
// series; the caller owns seeding.
func NewEngine(params Params, rng *rand.Rand) *Engine {
	return &Engine{
		params:  params,
		rng:     rng,
		price:   params.InitialPrice,
		priceMu: params.PriceMu,
		funding: params.InitialFunding,
		oi:      params.InitialOpenInterest,
	}
}

// Generate produces exactly nBars bars starting at startTS, spaced
// barSeconds apart. nBars <= 0 yields an empty series. The engine's
// state advances with every call, so a fresh engine is needed to
// reproduce a run.
func (e *Engine) Generate(nBars int, startTS, barSeconds int64) []*domain.Bar {
	if nBars <= 0 {
		return nil
	}
	bars := make([]*domain.Bar, 0, nBars)
	for i := 0; i < nBars; i++ {
		bars = append(bars, e.step(startTS+int64(i)*barSeconds))
	}
	return bars
}

// step advances every process by one bar and emits the resulting row.
func (e *Engine) step(ts int64) *domain.Bar {
	p := e.params

	// Occasional structural break in the mean-reversion target.
	if e.rng.Float64() < p.RegimeShiftProb {
		e.priceMu = e.price + e.rng.NormFloat64()*p.RegimeShiftSigma
	}

	open := e.price

	// Intrabar volatility scale, uniform in [0.5, 1.5) of baseline.
	barVol := p.VolBase * (0.5 + e.rng.Float64())

	close := e.ouStep(e.price, e.priceMu, p.PriceTheta, p.PriceSigma)
	close = math.Max(close, domain.MinClose)

	high := math.Max(open, close) + math.Abs(e.rng.NormFloat64()*barVol*0.5)
	low := math.Min(open, close) - math.Abs(e.rng.NormFloat64()*barVol*0.5)

	// Volume clusters around large realized moves.
	volume := 1000 + 10*math.Abs(close-open) + e.rng.NormFloat64()*200
	volume = math.Max(volume, domain.MinVolume)

	e.funding = e.ouStep(e.funding, p.FundingMu, p.FundingTheta, p.FundingSigma)
	e.funding = clamp(e.funding, -domain.MaxFunding, domain.MaxFunding)

	// Borrow tracks funding magnitude rather than running its own process.
	borrow := 0.3*math.Abs(e.funding) + e.rng.NormFloat64()*0.00002
	borrow = math.Max(borrow, 0)

	// Spikes when the bar move is large relative to baseline volatility.
	liq := 0.5 + math.Abs(close-open)/p.VolBase + e.rng.NormFloat64()*0.3
	liq = math.Max(liq, 0)

	depeg := clamp(e.rng.NormFloat64()*0.0003, -domain.MaxDepeg, domain.MaxDepeg)

	e.oi *= 1 + e.rng.NormFloat64()*0.01
	e.oi = math.Max(e.oi, domain.MinOpenInterest)

	bar := &domain.Bar{
		Timestamp:        ts,
		Open:             open,
		High:             high,
		Low:              low,
		Close:            close,
		Volume:           volume,
		Funding:          e.funding,
		Borrow:           borrow,
		LiquidationScore: liq,
		Depeg:            depeg,
		OpenInterest:     int64(e.oi),
	}

	e.price = close
	return bar
}

// ouStep performs one Euler-Maruyama step of an Ornstein-Uhlenbeck
// process with dt fixed at one bar unit.
func (e *Engine) ouStep(x, mu, theta, sigma float64) float64 {
	const dt = 1.0
	return x + theta*(mu-x)*dt + sigma*math.Sqrt(dt)*e.rng.NormFloat64()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
