package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic-market-lab/internal/domain"
)

func TestFormatRow(t *testing.T) {
	b := &domain.Bar{
		Timestamp:        1704067200,
		Open:             42000,
		High:             42150.456,
		Low:              41900.124,
		Close:            42100.5,
		Volume:           1523.46,
		Funding:          0.000123456789,
		Borrow:           0.0000345,
		LiquidationScore: 0.73217,
		Depeg:            -0.0002341,
		OpenInterest:     1_000_000,
	}

	got := FormatRow(b)
	want := "1704067200,42000.00,42150.46,41900.12,42100.50,1523.5,0.00012346,0.00003450,0.7322,-0.000234,1000000\n"
	assert.Equal(t, want, got)
}

func TestWriteCSV(t *testing.T) {
	bars := []*domain.Bar{
		{Timestamp: 1704067200, Open: 42000, High: 42010, Low: 41990, Close: 42005, Volume: 1000, OpenInterest: 1_000_000},
		{Timestamp: 1704067500, Open: 42005, High: 42020, Low: 42000, Close: 42010, Volume: 1100, OpenInterest: 1_000_000},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, bars))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, CSVHeader, lines[0])
	assert.Equal(t, "1704067200,42000.00,42010.00,41990.00,42005.00,1000.0,0.00000000,0.00000000,0.0000,0.000000,1000000", lines[1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, nil))
	assert.Equal(t, CSVHeader+"\n", sb.String())
}
