package dramexchange

import (
	"fmt"
	"net/http"
)

// FetchError is returned when the page could not be retrieved.
type FetchError struct {
	URL string
	// Status is the HTTP status code, it is zero when no response was received.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedTableError is returned when the price table is missing or does not
// have the expected shape.
type MalformedTableError struct {
	Reason string
	// Row is the 1-based index of the offending data row, zero if the error is
	// not about a specific row.
	Row int
	// Cells is the number of cells found in Row.
	Cells int
}

func (e *MalformedTableError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf(
			"malformed table: %s (row %d has %d cells, expected %d)",
			e.Reason, e.Row, e.Cells, SchemaWidth,
		)
	}
	return fmt.Sprintf("malformed table: %s", e.Reason)
}

// TimestampFormatError is returned when the "last update" text is missing or
// cannot be parsed.
type TimestampFormatError struct {
	Reason string
	Text   string
}

func (e *TimestampFormatError) Error() string {
	return fmt.Sprintf("timestamp format: %s: %q", e.Reason, e.Text)
}
