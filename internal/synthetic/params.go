package synthetic

// Params contains the fixed parameters for one generation run. The
// defaults describe a plausible BTC perpetual at 5-minute resolution;
// every value here is a tuning knob, while the hard floors and clamps
// live in the domain package.
type Params struct {
	InitialPrice float64 // close carried into bar 0 as its open

	// Price OU process.
	PriceMu    float64 // initial mean-reversion target, redrawn on regime shifts
	PriceTheta float64 // reversion speed
	PriceSigma float64 // per-bar volatility

	VolBase float64 // baseline intrabar volatility scale

	// Funding OU process.
	InitialFunding float64
	FundingMu      float64
	FundingTheta   float64
	FundingSigma   float64

	InitialOpenInterest float64

	// Regime shifts: per-bar probability of redrawing PriceMu as
	// price + Normal(0, RegimeShiftSigma).
	RegimeShiftProb  float64
	RegimeShiftSigma float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		InitialPrice: 42000.0,

		PriceMu:    42500.0,
		PriceTheta: 0.002, // slow mean reversion
		PriceSigma: 80.0,

		VolBase: 150.0,

		InitialFunding: 0.0001,
		FundingMu:      0.00008,
		FundingTheta:   0.1,
		FundingSigma:   0.00003,

		InitialOpenInterest: 1_000_000,

		RegimeShiftProb:  0.02,
		RegimeShiftSigma: 500.0,
	}
}

// Default run shape when the caller does not specify one.
const (
	DefaultBars       = 2000
	DefaultStartTS    = 1704067200 // 2024-01-01 00:00:00 UTC
	DefaultBarSeconds = 300
)
