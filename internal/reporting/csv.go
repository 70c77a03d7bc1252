// Package reporting renders bars into the flat 11-column CSV schema
// consumed by the backtest pipeline.
package reporting

import (
	"fmt"
	"io"

	"synthetic-market-lab/internal/domain"
)

// CSVHeader is the fixed column order of the output schema. Both the
// synthetic generator and the real-data converter emit exactly this
// header so downstream consumers cannot tell the sources apart.
const CSVHeader = "ts,open,high,low,close,volume,funding,borrow,liquidation_score,depeg,open_interest"

// rowFormat fixes the per-column precision: prices at 2 decimals,
// volume at 1, rates at 8, liquidation score at 4, depeg at 6.
const rowFormat = "%d,%.2f,%.2f,%.2f,%.2f,%.1f,%.8f,%.8f,%.4f,%.6f,%d\n"

// FormatRow renders a single bar as one CSV line including the
// trailing newline.
func FormatRow(b *domain.Bar) string {
	return fmt.Sprintf(rowFormat,
		b.Timestamp,
		b.Open,
		b.High,
		b.Low,
		b.Close,
		b.Volume,
		b.Funding,
		b.Borrow,
		b.LiquidationScore,
		b.Depeg,
		b.OpenInterest,
	)
}

// WriteCSV writes the header and one row per bar to w, preserving bar
// order. An empty series still gets the header.
func WriteCSV(w io.Writer, bars []*domain.Bar) error {
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return err
	}
	for _, b := range bars {
		if _, err := io.WriteString(w, FormatRow(b)); err != nil {
			return err
		}
	}
	return nil
}
