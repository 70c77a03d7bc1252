// Command convert reformats archived Binance kline dumps into the same
// flat CSV schema the synthetic generator emits, so real and synthetic
// datasets are interchangeable downstream.
//
// Usage: convert IN_DIR OUT_FILE
//
// IN_DIR holds the vendor *.zip archives; OUT_FILE is the combined CSV.
package main

import (
	"fmt"
	"log"
	"os"

	"synthetic-market-lab/internal/binance"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s IN_DIR OUT_FILE\n", os.Args[0])
		os.Exit(1)
	}
	inDir := os.Args[1]
	outFile := os.Args[2]

	logger := log.New(os.Stderr, "[convert] ", log.LstdFlags)

	converter := binance.NewConverter(binance.ConverterOptions{Logger: logger})
	result, err := converter.ConvertDir(inDir, outFile)
	if err != nil {
		logger.Fatalf("conversion failed: %v", err)
	}

	logger.Printf("done: %d archives read, %d skipped, %d rows converted, %d rows skipped",
		result.ArchivesRead, result.ArchivesSkipped, result.RowsConverted, result.RowsSkipped)
}
