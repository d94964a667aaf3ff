package snapshotlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dramex-logger/internal/scrapers/dramexchange"
)

// Entry is a snapshot file found in the log.
type Entry struct {
	Path  string
	Token dramexchange.Token
}

func (l Log) parseName(name string) (dramexchange.Token, bool, error) {
	prefix := l.Prefix + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, fileExt) {
		return dramexchange.Token{}, false, nil
	}
	token, err := dramexchange.ParseToken(strings.TrimSuffix(strings.TrimPrefix(name, prefix), fileExt))
	if err != nil {
		return dramexchange.Token{}, false, err
	}
	return token, true, nil
}

// List enumerates the snapshot files of the log in chronological order. A log
// directory that does not exist yet holds no snapshots.
func (l Log) List() ([]Entry, error) {
	dirents, err := os.ReadDir(l.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "list", Path: l.Dir, Err: err}
	}

	var entries []Entry
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		token, ok, err := l.parseName(d.Name())
		if err != nil {
			l.tel.ReportWarning(report_log_list, "skipping file with unparsable timestamp", d.Name(), err)
			continue
		}
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Path:  filepath.Join(l.Dir, d.Name()),
			Token: token,
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Token.Compare(b.Token)
	})
	return entries, nil
}

// Read loads a snapshot file back. Headers are whatever the file's first line
// says, rows are mapped by position like on the page.
func (l Log) Read(entry Entry) (dramexchange.Snapshot, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return dramexchange.Snapshot{}, &PersistenceError{Op: "open", Path: entry.Path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err == io.EOF {
		return dramexchange.Snapshot{}, &dramexchange.MalformedTableError{
			Reason: fmt.Sprintf("%s is empty", entry.Path),
		}
	}
	if err != nil {
		return dramexchange.Snapshot{}, &PersistenceError{Op: "read", Path: entry.Path, Err: err}
	}

	snapshot := dramexchange.Snapshot{
		Headers:   headers,
		Timestamp: entry.Token,
	}
	for i := 1; ; i++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dramexchange.Snapshot{}, &PersistenceError{Op: "read", Path: entry.Path, Err: err}
		}
		row, ok := dramexchange.RowFromFields(record)
		if !ok {
			return dramexchange.Snapshot{}, &dramexchange.MalformedTableError{
				Reason: fmt.Sprintf("%s: row is missing fields", entry.Path),
				Row:    i,
				Cells:  len(record),
			}
		}
		snapshot.Rows = append(snapshot.Rows, row)
	}

	return snapshot, nil
}
