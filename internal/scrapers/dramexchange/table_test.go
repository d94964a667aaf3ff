package dramexchange

import (
	"fmt"
	"strings"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/spot_price.html
var spotPricePage []byte

func parseFixture(t testing.TB, page string) *goquery.Document {
	doc, err := ParseDocument([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func tableHTML(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="tb_NationalDramSpotPrice">`)
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString(fmt.Sprintf("<td>%s</td>", cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestExtractFixture(t *testing.T) {
	doc := parseFixture(t, string(spotPricePage))

	headers, rows, err := Extract(doc.Selection, DefaultTableSelector)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, SchemaHeaders, headers)

	expected := []Row{
		{
			Item:           "DDR5 16Gb (2Gx8) 4800/5600",
			DailyHigh:      "4.950",
			DailyLow:       "4.600",
			SessionHigh:    "5.100",
			SessionLow:     "4.600",
			SessionAverage: "4.812",
			SessionChange:  "0.63 %",
		},
		{
			Item:           "DDR4 16Gb (1Gx16)3200",
			DailyHigh:      "3.950",
			DailyLow:       "3.300",
			SessionHigh:    "3.950",
			SessionLow:     "3.300",
			SessionAverage: "3.521",
			SessionChange:  "-0.11 %",
		},
		{
			Item:           "DDR3 4Gb 512Mx8 1600/1866",
			DailyHigh:      "1.200",
			DailyLow:       "0.900",
			SessionHigh:    "1.200",
			SessionLow:     "0.900",
			SessionAverage: "1.010",
			SessionChange:  "0.00 %",
		},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatal(diff)
	}

	text, err := FindTimestampText(doc.Selection, DefaultTimeSelector)
	require.NoError(t, err)
	token, err := ResolveTimestamp(text, DefaultMarkers)
	require.NoError(t, err)
	require.Equal(t, "20240305_1430", token.String())
}

func TestExtractRowCount(t *testing.T) {
	header := SchemaHeaders
	for n := 1; n <= 5; n++ {
		table := [][]string{header}
		for i := 0; i < n; i++ {
			table = append(table, []string{fmt.Sprintf("item %d", i), "1", "2", "3", "4", "5", "+0.1"})
		}

		doc := parseFixture(t, tableHTML(table...))
		rows, err := ExtractRows(doc.Selection, DefaultTableSelector)
		require.NoError(t, err)
		require.Len(t, rows, n)
		for i, row := range rows {
			require.Equal(t, fmt.Sprintf("item %d", i), row.Item)
		}
	}
}

func TestExtractRowsIgnoresHeaderText(t *testing.T) {
	doc := parseFixture(t, tableHTML(
		[]string{"Session Change", "Item", "x", "y", "z", "w", "v"},
		[]string{"DDR4 8Gb 1Gx8 3200", "3.10", "3.00", "3.15", "2.95", "3.05", "+0.02"},
	))

	headers, rows, err := Extract(doc.Selection, DefaultTableSelector)
	require.NoError(t, err)
	require.Equal(t, "Session Change", headers[0])
	require.Equal(t, "DDR4 8Gb 1Gx8 3200", rows[0].Item)
	require.Equal(t, "+0.02", rows[0].SessionChange)
}

func TestExtractMalformed(t *testing.T) {
	full := []string{"DDR4 8Gb 1Gx8 3200", "3.10", "3.00", "3.15", "2.95", "3.05", "+0.02"}

	testCases := []struct {
		name     string
		page     string
		selector string
		row      int
	}{
		{
			name:     "missing table",
			page:     `<html><body><table id="other"><tr><td>Item</td></tr></table></body></html>`,
			selector: DefaultTableSelector,
		},
		{
			name:     "empty header",
			page:     tableHTML([]string{" ", ""}, full),
			selector: DefaultTableSelector,
		},
		{
			name:     "header without cells",
			page:     `<html><body><table id="tb_NationalDramSpotPrice"><tr></tr></table></body></html>`,
			selector: DefaultTableSelector,
		},
		{
			name:     "short row",
			page:     tableHTML(SchemaHeaders, full, full[:6], full),
			selector: DefaultTableSelector,
			row:      2,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			doc := parseFixture(t, test.page)
			headers, rows, err := Extract(doc.Selection, test.selector)
			require.Nil(t, headers)
			require.Nil(t, rows)

			var tableErr *MalformedTableError
			require.ErrorAs(t, err, &tableErr)
			require.Equal(t, test.row, tableErr.Row)
			if test.row > 0 {
				require.Equal(t, 6, tableErr.Cells)
			}
		})
	}
}

func TestExtractHeaderOnly(t *testing.T) {
	doc := parseFixture(t, tableHTML(SchemaHeaders))

	headers, rows, err := Extract(doc.Selection, DefaultTableSelector)
	require.NoError(t, err)
	require.Equal(t, SchemaHeaders, headers)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestFindTimestampTextMissing(t *testing.T) {
	doc := parseFixture(t, tableHTML(SchemaHeaders))
	_, err := FindTimestampText(doc.Selection, DefaultTimeSelector)
	var tsErr *TimestampFormatError
	require.ErrorAs(t, err, &tsErr)
}

func TestRowFields(t *testing.T) {
	fields := []string{"DDR4 8Gb 1Gx8 3200", "3.10", "3.00", "3.15", "2.95", "3.05", "+0.02", "extra"}
	row, ok := RowFromFields(fields)
	require.True(t, ok)
	require.Equal(t, fields[:SchemaWidth], row.Fields())

	_, ok = RowFromFields(fields[:3])
	require.False(t, ok)
	require.Len(t, SchemaHeaders, SchemaWidth)
}
