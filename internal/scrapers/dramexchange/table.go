package dramexchange

import (
	"bytes"
	"fmt"

	"dramex-logger/internal/components/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTableSelector selects every row of the spot price table, the first
// one being the header.
const DefaultTableSelector = "#tb_NationalDramSpotPrice tr"

// ParseDocument parses a fetched page.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &MalformedTableError{Reason: fmt.Sprintf("parse html: %v", err)}
	}
	return doc, nil
}

func cellTexts(row *goquery.Selection) []string {
	cells := row.ChildrenFiltered("td, th")
	texts := make([]string, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		texts[i] = htmlutil.CleanText(cell)
	})
	return texts
}

func tableRows(root *goquery.Selection, selector string) (*goquery.Selection, error) {
	rows := root.Find(selector)
	if rows.Length() == 0 {
		return nil, &MalformedTableError{Reason: fmt.Sprintf("no rows match %q", selector)}
	}
	return rows, nil
}

// ExtractHeaders returns the text of each cell of the first table row.
func ExtractHeaders(root *goquery.Selection, selector string) ([]string, error) {
	rows, err := tableRows(root, selector)
	if err != nil {
		return nil, err
	}

	headers := cellTexts(rows.First())
	empty := true
	for _, h := range headers {
		if h != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, &MalformedTableError{Reason: "header row is empty"}
	}
	return headers, nil
}

// ExtractRows maps every row after the header onto a Row by position, the
// header text plays no part in the mapping. A single short row fails the whole
// extraction.
func ExtractRows(root *goquery.Selection, selector string) ([]Row, error) {
	rows, err := tableRows(root, selector)
	if err != nil {
		return nil, err
	}

	dataRows := rows.Slice(1, rows.Length())
	out := make([]Row, 0, dataRows.Length())
	for i := range dataRows.Nodes {
		cells := cellTexts(dataRows.Eq(i))
		row, ok := RowFromFields(cells)
		if !ok {
			return nil, &MalformedTableError{
				Reason: "row is missing cells",
				Row:    i + 1,
				Cells:  len(cells),
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Extract returns the header row and every data row of the table.
func Extract(root *goquery.Selection, selector string) ([]string, []Row, error) {
	headers, err := ExtractHeaders(root, selector)
	if err != nil {
		return nil, nil, err
	}
	rows, err := ExtractRows(root, selector)
	if err != nil {
		return nil, nil, err
	}
	return headers, rows, nil
}
