package snapshotlog

import (
	"errors"
	"time"

	"dramex-logger/internal/scrapers/dramexchange"
)

// DefaultAliases repairs item names the page has published inconsistently
// over time.
var DefaultAliases = map[string]string{
	"DDR34Gb 512Mx8 1600/1866": "DDR3 4Gb 512Mx8 1600/1866",
}

// Point is one row of one snapshot, stamped with the snapshot's update time.
type Point struct {
	Time  time.Time
	Token dramexchange.Token
	dramexchange.Row
}

type Series struct {
	// Points are ordered by update time, then by their position in the snapshot.
	Points []Point
}

// Items returns every distinct item in order of first appearance.
func (s Series) Items() []string {
	seen := map[string]bool{}
	var items []string
	for _, p := range s.Points {
		if seen[p.Item] {
			continue
		}
		seen[p.Item] = true
		items = append(items, p.Item)
	}
	return items
}

func (s Series) ForItem(item string) []Point {
	var out []Point
	for _, p := range s.Points {
		if p.Item == item {
			out = append(out, p)
		}
	}
	return out
}

// LoadSeries reads every snapshot in the log into one series, renaming items
// found in aliases. Snapshot files that do not have the expected shape are
// skipped with a warning, filesystem errors abort the load.
func (l Log) LoadSeries(aliases map[string]string) (Series, error) {
	entries, err := l.List()
	if err != nil {
		return Series{}, err
	}

	var series Series
	for _, entry := range entries {
		snapshot, err := l.Read(entry)
		var tableErr *dramexchange.MalformedTableError
		if errors.As(err, &tableErr) {
			l.tel.ReportWarning(report_log_series, "skipping malformed snapshot", entry.Path, err)
			continue
		}
		if err != nil {
			return Series{}, err
		}

		stamp := entry.Token.Time()
		for _, row := range snapshot.Rows {
			if renamed, ok := aliases[row.Item]; ok {
				row.Item = renamed
			}
			series.Points = append(series.Points, Point{
				Time:  stamp,
				Token: entry.Token,
				Row:   row,
			})
		}
	}

	l.tel.ReportCount(report_log_series, int64(len(series.Points)))
	return series, nil
}
