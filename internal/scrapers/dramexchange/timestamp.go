package dramexchange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dramex-logger/internal/components/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Markers delimit the update time inside the page's "last update" text.
type Markers struct {
	Label string
	Zone  string
}

// DefaultMarkers match the label and zone printed by DRAMeXchange.
var DefaultMarkers = Markers{
	Label: "Last Update:",
	Zone:  "(GMT+8)",
}

// DefaultTimeSelector selects the element holding the "last update" text.
const DefaultTimeSelector = "span.tab_time"

// month abbreviations are resolved from this table instead of time.Parse so the
// result never depends on the locale of the host.
var referenceMonths = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Token is the source-reported update time at minute resolution, as a wall
// clock reading in the source's own zone.
type Token struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// String renders the token as YYYYMMDD_HHMM, which sorts lexicographically in
// chronological order.
func (t Token) String() string {
	return fmt.Sprintf(
		"%04d%02d%02d_%02d%02d",
		t.Year, t.Month, t.Day, t.Hour, t.Minute,
	)
}

// Time returns the wall clock reading of the token. The zone is UTC only
// because no conversion is performed.
func (t Token) Time() time.Time {
	return time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
}

// Compare orders tokens chronologically, like strings.Compare.
func (t Token) Compare(other Token) int {
	return strings.Compare(t.String(), other.String())
}

func newToken(year int, month time.Month, day, hour, minute int) (Token, bool) {
	if year < 1 || year > 9999 || hour > 23 || minute > 59 {
		return Token{}, false
	}
	normalized := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	if normalized.Month() != month || normalized.Day() != day {
		return Token{}, false
	}
	return Token{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}, true
}

var tokenRegex = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})$`)

// ParseToken is the inverse of Token.String.
func ParseToken(text string) (Token, error) {
	groups := tokenRegex.FindStringSubmatch(text)
	if len(groups) < 6 {
		return Token{}, &TimestampFormatError{Reason: "not a YYYYMMDD_HHMM token", Text: text}
	}
	nums := make([]int, 5)
	for i := range nums {
		// the regex guarantees digits
		nums[i], _ = strconv.Atoi(groups[i+1])
	}
	token, ok := newToken(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4])
	if !ok {
		return Token{}, &TimestampFormatError{Reason: "token out of range", Text: text}
	}
	return token, nil
}

var strayPunctuation = regexp.MustCompile(`[^A-Za-z0-9:]+`)

// strict "<Mon> <D> <YYYY> <H>:<MM>" after cleaning
var updateTimeRegex = regexp.MustCompile(`^([A-Za-z]{3}) (\d{1,2}) (\d{4}) (\d{1,2}):(\d{1,2})$`)

func isolate(text string, markers Markers) (string, error) {
	_, afterLabel, found := strings.Cut(text, markers.Label)
	if !found {
		return "", &TimestampFormatError{Reason: fmt.Sprintf("label %q not found", markers.Label), Text: text}
	}
	value, _, found := strings.Cut(afterLabel, markers.Zone)
	if !found {
		return "", &TimestampFormatError{Reason: fmt.Sprintf("zone annotation %q not found", markers.Zone), Text: text}
	}
	return value, nil
}

// ResolveTimestamp extracts the update time between markers.Label and
// markers.Zone and parses it as "<Mon> <D> <YYYY> <H>:<MM>". Periods, other
// punctuation and runs of whitespace are tolerated between the parts, ex.
// "Last Update:Mar.5 2024    14:30 (GMT+8)". No zone conversion is done.
func ResolveTimestamp(text string, markers Markers) (Token, error) {
	value, err := isolate(text, markers)
	if err != nil {
		return Token{}, err
	}

	cleaned := strayPunctuation.ReplaceAllString(value, " ")
	cleaned = strings.TrimSpace(cleaned)

	groups := updateTimeRegex.FindStringSubmatch(cleaned)
	if len(groups) < 6 {
		return Token{}, &TimestampFormatError{Reason: "expected <Mon> <D> <YYYY> <H>:<MM>", Text: text}
	}

	month, ok := referenceMonths[strings.ToLower(groups[1])]
	if !ok {
		return Token{}, &TimestampFormatError{Reason: fmt.Sprintf("unknown month %q", groups[1]), Text: text}
	}
	day, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])
	hour, _ := strconv.Atoi(groups[4])
	minute, _ := strconv.Atoi(groups[5])

	token, ok := newToken(year, month, day, hour, minute)
	if !ok {
		return Token{}, &TimestampFormatError{Reason: "date or time out of range", Text: text}
	}
	return token, nil
}

// FindTimestampText returns the normalized text of the first element matching
// selector.
func FindTimestampText(root *goquery.Selection, selector string) (string, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return "", &TimestampFormatError{
			Reason: fmt.Sprintf("no element matches %q", selector),
		}
	}
	return htmlutil.CleanText(sel), nil
}
