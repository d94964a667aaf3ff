package dramexchange

// SchemaHeaders are the column names of a snapshot, in the order the fields
// of a Row are laid out.
var SchemaHeaders = []string{
	"Item",
	"Daily High",
	"Daily Low",
	"Session High",
	"Session Low",
	"Session Average",
	"Session Change",
}

// SchemaWidth is the number of cells a data row must have.
const SchemaWidth = 7

// Row is one item's quote in a snapshot. Prices are kept as the text shown
// on the page, parsing them is left to consumers.
type Row struct {
	Item           string
	DailyHigh      string
	DailyLow       string
	SessionHigh    string
	SessionLow     string
	SessionAverage string
	SessionChange  string
}

// Fields returns the row in SchemaHeaders order.
func (r Row) Fields() []string {
	return []string{
		r.Item,
		r.DailyHigh,
		r.DailyLow,
		r.SessionHigh,
		r.SessionLow,
		r.SessionAverage,
		r.SessionChange,
	}
}

// RowFromFields maps cells positionally onto a Row. It reports false if there
// are fewer than SchemaWidth fields, trailing extras are ignored.
func RowFromFields(fields []string) (Row, bool) {
	if len(fields) < SchemaWidth {
		return Row{}, false
	}
	return Row{
		Item:           fields[0],
		DailyHigh:      fields[1],
		DailyLow:       fields[2],
		SessionHigh:    fields[3],
		SessionLow:     fields[4],
		SessionAverage: fields[5],
		SessionChange:  fields[6],
	}, true
}

// Snapshot is every row of the price table as of one source-reported update time.
type Snapshot struct {
	// Headers is the header row as it appeared on the page.
	Headers   []string
	Rows      []Row
	Timestamp Token
}
