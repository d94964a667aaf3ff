package snapshotlog

import (
	"bytes"
	"encoding/csv"
	"os"

	"dramex-logger/internal/scrapers/dramexchange"
)

// headerLine is the scraped header when it has one name per column and
// SchemaHeaders otherwise.
func headerLine(headers []string) []string {
	if len(headers) != dramexchange.SchemaWidth {
		return dramexchange.SchemaHeaders
	}
	return headers
}

func encode(headers []string, rows []dramexchange.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := w.Write(headerLine(headers))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		err = w.Write(row.Fields())
		if err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// writeFile writes contents to a temporary file in the log directory and
// renames it onto path, a failed write leaves any existing file untouched.
func (l Log) writeFile(path string, contents []byte) error {
	tmp, err := os.CreateTemp(l.Dir, "."+l.Prefix+"_*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(contents)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmp.Name(), 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Write stores the snapshot at Path(snapshot.Timestamp), replacing any file
// already there. The header line is snapshot.Headers, or SchemaHeaders when
// the scraped header does not have one name per column.
//
// The file appears atomically, on failure the returned path is empty and an
// earlier snapshot with the same update time is kept.
func (l Log) Write(snapshot dramexchange.Snapshot) (string, error) {
	_, err := l.EnsureDir()
	if err != nil {
		return "", err
	}

	path := l.Path(snapshot.Timestamp)
	contents, err := encode(snapshot.Headers, snapshot.Rows)
	if err != nil {
		l.tel.ReportBroken(report_log_write, err, path)
		return "", &PersistenceError{Op: "encode", Path: path, Err: err}
	}

	_, statErr := os.Stat(path)
	replacing := statErr == nil

	err = l.writeFile(path, contents)
	if err != nil {
		l.tel.ReportBroken(report_log_write, err, path)
		return "", &PersistenceError{Op: "write", Path: path, Err: err}
	}

	if replacing {
		l.tel.ReportWarning(report_log_write, "replaced snapshot with the same update time", path)
	}
	l.tel.ReportInfo("snapshot saved", path, len(snapshot.Rows))
	return path, nil
}
