// Package binance adapts archived Binance kline dumps into the flat
// 11-column schema the synthetic generator emits. It is a pure format
// adapter: decompress, parse, rescale the timestamp, zero-pad the
// derived fields.
package binance

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"synthetic-market-lab/internal/domain"
	"synthetic-market-lab/internal/reporting"
)

// klineColumns is the Binance kline dump layout:
// open_time_ms, open, high, low, close, volume, close_time_ms,
// quote_volume, trade_count, taker_buy_base, taker_buy_quote, ignored.
const klineColumns = 12

// ErrNoArchives is returned when the input directory contains no zip archives.
var ErrNoArchives = errors.New("no zip archives in input directory")

// errOutput marks a failure writing the combined CSV. Unlike a corrupt
// input archive, a broken output sink cannot be skipped over.
var errOutput = errors.New("write output")

// Converter reads zipped kline archives and writes schema rows.
// Malformed entries are skipped and counted rather than aborting the
// run, so one bad row never loses the rest of a conversion.
type Converter struct {
	logger *log.Logger
}

// ConverterOptions contains configuration for creating a Converter.
type ConverterOptions struct {
	Logger *log.Logger
}

// NewConverter creates a converter.
func NewConverter(opts ConverterOptions) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{logger: logger}
}

// ConvertResult contains statistics from a conversion run.
type ConvertResult struct {
	ArchivesRead    int
	ArchivesSkipped int
	RowsConverted   int
	RowsSkipped     int
}

// ConvertDir converts every *.zip under inDir, in sorted filename
// order, into a single CSV at outFile. Parent directories of outFile
// are created as needed.
func (c *Converter) ConvertDir(inDir, outFile string) (*ConvertResult, error) {
	entries, err := filepath.Glob(filepath.Join(inDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inDir, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoArchives, inDir)
	}
	sort.Strings(entries)

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", outFile, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, reporting.CSVHeader+"\n"); err != nil {
		return nil, err
	}

	result := &ConvertResult{}
	for _, zpath := range entries {
		err := c.convertArchive(zpath, f, result)
		if errors.Is(err, errOutput) {
			return nil, fmt.Errorf("convert %s: %w", zpath, err)
		}
		if err != nil {
			// Corrupt or unreadable archive; keep the progress made on
			// the other files.
			c.logger.Printf("skipping archive %s: %v", zpath, err)
			result.ArchivesSkipped++
			continue
		}
		result.ArchivesRead++
	}

	if err := f.Sync(); err != nil {
		return nil, err
	}
	return result, nil
}

// convertArchive streams every .csv member of one zip into w.
func (c *Converter) convertArchive(zpath string, w io.Writer, result *ConvertResult) error {
	zr, err := zip.OpenReader(zpath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.HasSuffix(member.Name, ".csv") {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return fmt.Errorf("open member %s: %w", member.Name, err)
		}
		err = c.convertMember(member.Name, rc, w, result)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) convertMember(name string, r io.Reader, w io.Writer, result *ConvertResult) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count checked per row so bad rows skip, not abort

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// Only CSV syntax errors are line-local. Anything else is an
			// I/O failure (truncated or corrupt deflate stream) that would
			// repeat forever, so give up on the member.
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("read member %s: %w", name, err)
			}
			c.logger.Printf("skipping row in %s: %v", name, err)
			result.RowsSkipped++
			continue
		}
		bar, err := ParseKline(row)
		if err != nil {
			c.logger.Printf("skipping row in %s: %v", name, err)
			result.RowsSkipped++
			continue
		}
		if _, err := io.WriteString(w, reporting.FormatRow(bar)); err != nil {
			return fmt.Errorf("%w: %w", errOutput, err)
		}
		result.RowsConverted++
	}
}

// ParseKline converts one Binance kline record into a schema bar. The
// open time is rescaled from milliseconds to whole seconds; funding,
// borrow, liquidation score, depeg and open interest are zeroed since
// the vendor dump carries no such fields.
func ParseKline(row []string) (*domain.Bar, error) {
	if len(row) != klineColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", klineColumns, len(row))
	}
	openTimeMs, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("open time %q: %w", row[0], err)
	}

	var fields [5]float64
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1+i]), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d %q: %w", 1+i, row[1+i], err)
		}
		fields[i] = v
	}

	return &domain.Bar{
		Timestamp: openTimeMs / 1000,
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
	}, nil
}
