// Command generate writes a synthetic market data series to stdout in
// the flat 11-column CSV schema.
//
// Usage: generate [N_BARS]
//
// N_BARS defaults to 2000 five-minute bars starting 2024-01-01 UTC.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"synthetic-market-lab/internal/reporting"
	"synthetic-market-lab/internal/synthetic"
)

func main() {
	nBars := synthetic.DefaultBars
	if len(os.Args) > 1 {
		var err error
		nBars, err = strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Usage: %s [N_BARS]\ninvalid bar count %q\n", os.Args[0], os.Args[1])
			os.Exit(1)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := synthetic.NewEngine(synthetic.DefaultParams(), rng)
	bars := engine.Generate(nBars, synthetic.DefaultStartTS, synthetic.DefaultBarSeconds)

	w := bufio.NewWriter(os.Stdout)
	if err := reporting.WriteCSV(w, bars); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}
